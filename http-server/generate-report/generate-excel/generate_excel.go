package generate_excel

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

type ExcelGenerator interface {
	GenerateWorksheetReport(ctx context.Context, worksheetID int64) ([]byte, error)
}

// GenerateReportExcel streams a worksheet estimation summary as an xlsx
// attachment.
func GenerateReportExcel(log *slog.Logger, gen ExcelGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.generate_excel.GenerateReportExcel"

		worksheetID, err := strconv.ParseInt(r.URL.Query().Get("worksheet_id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid worksheet_id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		data, err := gen.GenerateWorksheetReport(ctx, worksheetID)
		if err != nil {
			log.Error("failed to generate report",
				slog.String("op", op), slog.Int64("worksheet_id", worksheetID), slog.String("error", err.Error()))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		filename := fmt.Sprintf("estimation_%d.xlsx", worksheetID)
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.Write(data)
	}
}
