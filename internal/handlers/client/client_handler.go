// internal/handlers/client/client_handler.go
package client

import (
	"net/http"
	"strconv"

	"alamin-service/internal/domain/client"
	"alamin-service/internal/middleware"
	"alamin-service/internal/pkg/response"
	service "alamin-service/internal/service/client"

	"github.com/gin-gonic/gin"
)

type ClientHandler struct {
	clientService *service.ClientService
}

func NewClientHandler(clientService *service.ClientService) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
	}
}

// List returns the clients visible to the caller.
func (h *ClientHandler) List(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	clients, err := h.clientService.List(c.Request.Context(), actor)
	if err != nil {
		response.FromError(c, "failed to list clients", err)
		return
	}

	response.Success(c, http.StatusOK, "clients retrieved", clients)
}

// Get returns one client.
func (h *ClientHandler) Get(c *gin.Context) {
	actor := middleware.MustGetActor(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.clientService.Get(c.Request.Context(), actor, id)
	if err != nil {
		response.FromError(c, "failed to get client", err)
		return
	}

	response.Success(c, http.StatusOK, "client retrieved", result)
}

// Create adds a new client owned by the caller.
func (h *ClientHandler) Create(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var req client.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.clientService.Create(c.Request.Context(), actor, &req)
	if err != nil {
		response.FromError(c, "failed to create client", err)
		return
	}

	response.Success(c, http.StatusCreated, "client created", result)
}

// Update applies a partial update.
func (h *ClientHandler) Update(c *gin.Context) {
	actor := middleware.MustGetActor(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req client.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.clientService.Update(c.Request.Context(), actor, id, &req)
	if err != nil {
		response.FromError(c, "failed to update client", err)
		return
	}

	response.Success(c, http.StatusOK, "client updated", result)
}

// Delete removes a client and everything it owns.
func (h *ClientHandler) Delete(c *gin.Context) {
	actor := middleware.MustGetActor(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.clientService.Delete(c.Request.Context(), actor, id); err != nil {
		response.FromError(c, "failed to delete client", err)
		return
	}

	response.Success(c, http.StatusOK, "client deleted", nil)
}

// AddTransaction appends a transaction to a client.
func (h *ClientHandler) AddTransaction(c *gin.Context) {
	actor := middleware.MustGetActor(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req client.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.clientService.AddTransaction(c.Request.Context(), actor, id, &req)
	if err != nil {
		response.FromError(c, "failed to add transaction", err)
		return
	}

	response.Success(c, http.StatusCreated, "transaction added", result)
}

// UpdateTransaction replaces one transaction.
func (h *ClientHandler) UpdateTransaction(c *gin.Context) {
	actor := middleware.MustGetActor(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	txID, ok := pathID(c, "txId")
	if !ok {
		return
	}

	var req client.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.clientService.UpdateTransaction(c.Request.Context(), actor, id, txID, &req)
	if err != nil {
		response.FromError(c, "failed to update transaction", err)
		return
	}

	response.Success(c, http.StatusOK, "transaction updated", result)
}

// DeleteTransaction removes one transaction.
func (h *ClientHandler) DeleteTransaction(c *gin.Context) {
	actor := middleware.MustGetActor(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	txID, ok := pathID(c, "txId")
	if !ok {
		return
	}

	if err := h.clientService.DeleteTransaction(c.Request.Context(), actor, id, txID); err != nil {
		response.FromError(c, "failed to delete transaction", err)
		return
	}

	response.Success(c, http.StatusOK, "transaction deleted", nil)
}

// AddFile stores an uploaded document.
func (h *ClientHandler) AddFile(c *gin.Context) {
	actor := middleware.MustGetActor(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req client.UploadFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.clientService.AddFile(c.Request.Context(), actor, id, &req)
	if err != nil {
		response.FromError(c, "failed to upload file", err)
		return
	}

	response.Success(c, http.StatusCreated, "file uploaded", result)
}

// GetFile returns one document with its payload.
func (h *ClientHandler) GetFile(c *gin.Context) {
	actor := middleware.MustGetActor(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	fileID, ok := pathID(c, "fileId")
	if !ok {
		return
	}

	result, err := h.clientService.GetFile(c.Request.Context(), actor, id, fileID)
	if err != nil {
		response.FromError(c, "failed to get file", err)
		return
	}

	response.Success(c, http.StatusOK, "file retrieved", result)
}

// DeleteFile removes one document.
func (h *ClientHandler) DeleteFile(c *gin.Context) {
	actor := middleware.MustGetActor(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	fileID, ok := pathID(c, "fileId")
	if !ok {
		return
	}

	if err := h.clientService.DeleteFile(c.Request.Context(), actor, id, fileID); err != nil {
		response.FromError(c, "failed to delete file", err)
		return
	}

	response.Success(c, http.StatusOK, "file deleted", nil)
}

// SetReminder sets or clears the client's reminder.
func (h *ClientHandler) SetReminder(c *gin.Context) {
	actor := middleware.MustGetActor(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req client.SetReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.clientService.SetReminder(c.Request.Context(), actor, id, req.ReminderDate)
	if err != nil {
		response.FromError(c, "failed to set reminder", err)
		return
	}

	response.Success(c, http.StatusOK, "reminder updated", result)
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "invalid "+name, err)
		return 0, false
	}
	return id, true
}
