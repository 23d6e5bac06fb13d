package estimate

import "steelestim/internal/storage"

// ConnectionTimes are the resolved minute values of one connection
// assignment: each field is the assignment override when set, otherwise the
// connection type default, otherwise 0.
type ConnectionTimes struct {
	AssembleFitTack float64 `json:"assemble_fit_tack"`
	Weld            float64 `json:"weld"`
	WeldCheck       float64 `json:"weld_check"`
	WeldTest        float64 `json:"weld_test"`
	TotalMinutes    float64 `json:"total_minutes"`
}

// ResolveConnection resolves the effective minute values of a connection
// assignment against its connection type defaults. A missing default record
// resolves to zeroes, never an error.
func ResolveConnection(ic storage.WeldingItemConnection, def *storage.WeldingConnection) ConnectionTimes {
	var d storage.WeldingConnection
	if def != nil {
		d = *def
	}

	times := ConnectionTimes{
		AssembleFitTack: orDefault(ic.AssembleFitTack, d.DefaultAssembleFitTack),
		Weld:            orDefault(ic.Weld, d.DefaultWeld),
		WeldCheck:       orDefault(ic.WeldCheck, d.DefaultWeldCheck),
		WeldTest:        orDefault(ic.WeldTest, d.DefaultWeldTest),
	}
	times.TotalMinutes = (times.AssembleFitTack + times.Weld + times.WeldCheck + times.WeldTest) * float64(ic.Quantity)

	return times
}

func orDefault(override *float64, def float64) float64 {
	if override != nil {
		return *override
	}
	return def
}
