// internal/handlers/reminder/reminder_handler.go
package reminder

import (
	"net/http"

	"alamin-service/internal/middleware"
	"alamin-service/internal/pkg/response"
	service "alamin-service/internal/service/reminder"

	"github.com/gin-gonic/gin"
)

type ReminderHandler struct {
	scheduler *service.Scheduler
}

func NewReminderHandler(scheduler *service.Scheduler) *ReminderHandler {
	return &ReminderHandler{
		scheduler: scheduler,
	}
}

// ListAll returns every future reminder visible to the caller.
func (h *ReminderHandler) ListAll(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	reminders, err := h.scheduler.ListAll(c.Request.Context(), actor)
	if err != nil {
		response.FromError(c, "failed to list reminders", err)
		return
	}

	response.Success(c, http.StatusOK, "reminders retrieved", reminders)
}

// ListUpcoming returns reminders due within the next seven days.
func (h *ReminderHandler) ListUpcoming(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	reminders, err := h.scheduler.ListUpcoming(c.Request.Context(), actor)
	if err != nil {
		response.FromError(c, "failed to list upcoming reminders", err)
		return
	}

	response.Success(c, http.StatusOK, "upcoming reminders retrieved", reminders)
}
