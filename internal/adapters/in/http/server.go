package http

import (
	"net/http"

	"notifier/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// Server exposes notification progress over HTTP. It coordinates between
// HTTP handlers and application use cases; the notification passes
// themselves run on the job schedule, not through this API.
type Server struct {
	getPendingRowsHandler    queries.GetPendingRowsQueryHandler
	getDeliveryReportHandler queries.GetDeliveryReportQueryHandler
}

// NewServer creates a new HTTP server with the required query handlers.
func NewServer(
	getPendingRowsHandler queries.GetPendingRowsQueryHandler,
	getDeliveryReportHandler queries.GetDeliveryReportQueryHandler,
) *Server {
	return &Server{
		getPendingRowsHandler:    getPendingRowsHandler,
		getDeliveryReportHandler: getDeliveryReportHandler,
	}
}

// RegisterRoutes attaches the server's endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.GetHealth)
	e.GET("/api/v1/rows/pending", s.GetPendingRows)
	e.GET("/api/v1/report", s.GetDeliveryReport)
}

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PendingRowResponse is one order row still awaiting notification.
type PendingRowResponse struct {
	RowID            string `json:"rowId"`
	BillingName      string `json:"billingName"`
	ShippingPhone    string `json:"shippingPhone"`
	LineitemName     string `json:"lineitemName"`
	LineitemQuantity string `json:"lineitemQuantity"`
	Total            string `json:"total"`
}

// DeliveryReportResponse summarizes row counts per notification status.
type DeliveryReportResponse struct {
	Total   int64 `json:"total"`
	Pending int64 `json:"pending"`
	Sent    int64 `json:"sent"`
	Failed  int64 `json:"failed"`
	Unknown int64 `json:"unknown"`
}

// GetHealth handles GET /health - liveness probe.
func (s *Server) GetHealth(ctx echo.Context) error {
	return ctx.NoContent(http.StatusOK)
}

// GetPendingRows handles GET /api/v1/rows/pending - retrieves the rows the
// next pass would pick up.
func (s *Server) GetPendingRows(ctx echo.Context) error {
	query := queries.NewGetPendingRowsQuery()

	rows, err := s.getPendingRowsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve pending rows",
		})
	}

	response := make([]PendingRowResponse, len(rows))
	for i, row := range rows {
		response[i] = PendingRowResponse{
			RowID:            row.RowID,
			BillingName:      row.BillingName,
			ShippingPhone:    row.ShippingPhone,
			LineitemName:     row.LineitemName,
			LineitemQuantity: row.LineitemQuantity,
			Total:            row.Total,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetDeliveryReport handles GET /api/v1/report - retrieves notification
// progress counts.
func (s *Server) GetDeliveryReport(ctx echo.Context) error {
	query := queries.NewGetDeliveryReportQuery()

	report, err := s.getDeliveryReportHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve delivery report",
		})
	}

	return ctx.JSON(http.StatusOK, DeliveryReportResponse{
		Total:   report.Total,
		Pending: report.Pending,
		Sent:    report.Sent,
		Failed:  report.Failed,
		Unknown: report.Unknown,
	})
}
