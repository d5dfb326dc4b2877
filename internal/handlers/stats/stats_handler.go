// internal/handlers/stats/stats_handler.go
package stats

import (
	"net/http"

	"alamin-service/internal/middleware"
	"alamin-service/internal/pkg/response"
	clientsvc "alamin-service/internal/service/client"
	insurancesvc "alamin-service/internal/service/insurance"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	clientService    *clientsvc.ClientService
	insuranceService *insurancesvc.InsuranceService
}

func NewStatsHandler(clientService *clientsvc.ClientService, insuranceService *insurancesvc.InsuranceService) *StatsHandler {
	return &StatsHandler{
		clientService:    clientService,
		insuranceService: insuranceService,
	}
}

type overview struct {
	Clients            int            `json:"clients"`
	Transactions       int            `json:"transactions"`
	Files              int            `json:"files"`
	WithReminders      int            `json:"withReminders"`
	InsuranceCompanies int            `json:"insuranceCompanies"`
	LatestClients      []latestClient `json:"latestClients"`
}

type latestClient struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
}

const latestClientLimit = 5

// Overview returns record counts over the caller's visible set.
func (h *StatsHandler) Overview(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	clients, err := h.clientService.List(c.Request.Context(), actor)
	if err != nil {
		response.FromError(c, "failed to load stats", err)
		return
	}
	companies, err := h.insuranceService.List(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to load stats", err)
		return
	}

	stats := overview{
		Clients:            len(clients),
		InsuranceCompanies: len(companies),
	}
	for _, cl := range clients {
		stats.Transactions += len(cl.Transactions)
		stats.Files += len(cl.Files)
		if cl.ReminderDate != nil {
			stats.WithReminders++
		}
	}

	// List returns the most recently updated records first.
	for _, cl := range clients {
		if len(stats.LatestClients) == latestClientLimit {
			break
		}
		stats.LatestClients = append(stats.LatestClients, latestClient{ID: cl.ID, FullName: cl.FullName})
	}

	response.Success(c, http.StatusOK, "stats retrieved", stats)
}
