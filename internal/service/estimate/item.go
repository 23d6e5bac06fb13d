package estimate

import "steelestim/internal/storage"

// ProcessingItemMinutes is the total estimated minutes for one processing
// line. Cut and clean scale with piece count. Handling steps scale with
// bundle count and are charged once per bundle: a row that belongs to a
// bundle contributes them only when it is the parent row of that bundle,
// so members of the same bundle do not each pay the bundle cost again.
func ProcessingItemMinutes(item storage.ProcessingItem) float64 {
	var total float64

	chargesDelivery := item.DeliveryBundleID == nil || item.IsParentInBundle
	chargesPack := item.PackBundleID == nil || item.IsParentInPackBundle

	if chargesDelivery {
		total += item.UnloadTimePerBundle
	}

	total += item.MarkMeasureCut * float64(item.Quantity)
	total += item.QualityCheckClean * float64(item.Quantity)

	if chargesPack {
		packBundles := float64(PackBundles(item))
		total += item.MoveToAssembly * packBundles
		total += item.MoveAfterWeld * packBundles
	}

	if chargesDelivery {
		total += item.LoadingTimePerBundle
	}

	return total
}

// WeldingItemMinutes is the total estimated minutes for one welding line:
// the sum over its connection assignments, resolved against the connection
// type defaults in connections. An item without assignments is 0 even when
// the legacy single-connection fields are populated; once explicit
// assignments exist the legacy fields would double count.
func WeldingItemMinutes(item storage.WeldingItem, connections map[int64]storage.WeldingConnection) float64 {
	var total float64
	for _, ic := range item.Connections {
		var def *storage.WeldingConnection
		if c, ok := connections[ic.WeldingConnectionID]; ok {
			def = &c
		}
		total += ResolveConnection(ic, def).TotalMinutes
	}
	return total
}
