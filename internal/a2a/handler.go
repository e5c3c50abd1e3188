package a2a

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/BerylCAtieno/smm-content-analyzer/internal/agent"
	"github.com/BerylCAtieno/smm-content-analyzer/internal/analyzer"
	"github.com/BerylCAtieno/smm-content-analyzer/internal/controller"
	"github.com/BerylCAtieno/smm-content-analyzer/internal/models"
	"github.com/BerylCAtieno/smm-content-analyzer/internal/render"
	"github.com/BerylCAtieno/smm-content-analyzer/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// directMessageID answers messages sent without the JSON-RPC envelope.
var directMessageID = json.RawMessage(`"direct-message"`)

const missingInputMessage = "Kirim target audiens (ageMin, ageMax, gender, location, interests) dan konten Instagram (link dan/atau caption) untuk dianalisa."

type A2AHandler struct {
	requester analyzer.Requester
	logger    *zap.Logger
}

func NewA2AHandler(requester analyzer.Requester, logger *zap.Logger) *A2AHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &A2AHandler{
		requester: requester,
		logger:    logger.Named("a2a"),
	}
}

// HandleAnalyzer processes A2A messages
func (h *A2AHandler) HandleAnalyzer(c *gin.Context) {
	bodyBytes, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.logger.Error("failed to read request body", zap.Error(err))
		h.sendErrorResponse(c, nil, "Failed to read request body", CodeParseError)
		return
	}
	h.logger.Debug("raw request body", zap.ByteString("body", bodyBytes))

	var rpcReq JSONRPCRequest
	if err := json.Unmarshal(bodyBytes, &rpcReq); err != nil || rpcReq.JSONRPC == "" {
		h.logger.Debug("not a JSON-RPC request, trying direct message parsing", zap.Error(err))
		h.handleDirectMessage(c, bodyBytes)
		return
	}

	if rpcReq.JSONRPC != "2.0" {
		h.logger.Warn("invalid JSON-RPC version", zap.String("version", rpcReq.JSONRPC))
		h.sendErrorResponse(c, rpcReq.ID, "Invalid JSON-RPC version", CodeInvalidRequest)
		return
	}

	switch rpcReq.Method {
	case "agent/task", "message/send":
		h.handleTask(c, rpcReq)
	default:
		h.logger.Warn("unknown method", zap.String("method", rpcReq.Method))
		h.sendErrorResponse(c, rpcReq.ID, fmt.Sprintf("Method not found: %s", rpcReq.Method), CodeMethodNotFound)
	}
}

// handleDirectMessage handles a message sent without the JSON-RPC wrapper
func (h *A2AHandler) handleDirectMessage(c *gin.Context, bodyBytes []byte) {
	var msgParams MessageParams
	if err := json.Unmarshal(bodyBytes, &msgParams); err != nil || len(msgParams.Message.Parts) == 0 {
		h.logger.Warn("failed to parse direct message", zap.Error(err))
		h.sendErrorResponse(c, nil, "Invalid request format", CodeParseError)
		return
	}

	result := h.runAnalysis(c.Request.Context(), msgParams.Message)
	h.sendSuccessResponse(c, directMessageID, result)
}

func (h *A2AHandler) handleTask(c *gin.Context, rpcReq JSONRPCRequest) {
	paramsJSON, err := json.Marshal(rpcReq.Params)
	if err != nil {
		h.sendErrorResponse(c, rpcReq.ID, "Failed to parse parameters", CodeInvalidParams)
		return
	}

	var msgParams MessageParams
	if err := json.Unmarshal(paramsJSON, &msgParams); err != nil {
		h.logger.Warn("failed to unmarshal params", zap.Error(err))
		h.sendErrorResponse(c, rpcReq.ID, "Invalid parameters", CodeInvalidParams)
		return
	}

	result := h.runAnalysis(c.Request.Context(), msgParams.Message)
	h.sendSuccessResponse(c, rpcReq.ID, result)
}

// runAnalysis drives a fresh controller through edit → submit → wait for one
// message and turns the outcome into a task.
func (h *A2AHandler) runAnalysis(ctx context.Context, msg A2AMessage) TaskResult {
	taskID := msg.TaskID
	if taskID == "" {
		taskID = uuid.New().String()
	}
	contextID := msg.ContextID
	if contextID == "" {
		contextID = uuid.New().String()
	}
	log := h.logger.With(zap.String("task_id", taskID))

	edits, err := extractFormInput(msg)
	if err != nil {
		log.Warn("could not read form input", zap.Error(err))
		return h.createErrorTaskResult(taskID, contextID, StateInputRequired, fmt.Sprintf("Format input tidak dikenali: %v", err))
	}
	if len(edits) == 0 {
		return h.createErrorTaskResult(taskID, contextID, StateInputRequired, missingInputMessage)
	}

	ctrl := controller.New(h.requester, log)
	for _, edit := range edits {
		if err := edit.apply(ctrl); err != nil {
			log.Warn("rejected field edit", zap.String("field", edit.name()), zap.Error(err))
			return h.createErrorTaskResult(taskID, contextID, StateInputRequired, fieldErrorMessage(edit, err))
		}
	}

	sub, err := ctrl.Submit(ctx)
	if err != nil {
		if errors.Is(err, validator.ErrValidation) {
			return h.createErrorTaskResult(taskID, contextID, StateInputRequired, err.Error())
		}
		return h.createErrorTaskResult(taskID, contextID, StateFailed, controller.FailureMessage(err))
	}

	report, err := sub.Wait(ctx)
	if err != nil {
		message := controller.FailureMessage(err)
		if view := ctrl.Snapshot(); view.Error != nil {
			message = *view.Error
		}
		return h.createErrorTaskResult(taskID, contextID, StateFailed, message)
	}

	log.Info("analysis task completed", zap.String("likelihood", report.PurchaseInfluence.Likelihood))
	return h.createSuccessTaskResult(taskID, contextID, report)
}

func fieldErrorMessage(edit fieldEdit, err error) string {
	if errors.Is(err, models.ErrUnknownGender) {
		return fmt.Sprintf("Gender %q tidak dikenali. Pilih salah satu: %s, %s, atau %s.",
			edit.value, models.GenderAll, models.GenderMale, models.GenderFemale)
	}
	return fmt.Sprintf("Field %s tidak bisa diisi: %v", edit.name(), err)
}

// ServeAgentCard serves the agent card using Gin
func (h *A2AHandler) ServeAgentCard(c *gin.Context) {
	if err := agent.LoadAgentCard(); err != nil {
		h.logger.Error("error loading agent card", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Agent card not available"})
		return
	}
	c.Data(http.StatusOK, "application/json", agent.AgentCardData)
}

func (h *A2AHandler) createSuccessTaskResult(taskID, contextID string, report *models.AnalysisReport) TaskResult {
	responseText := render.Markdown(report)

	return TaskResult{
		ID:        taskID,
		ContextID: contextID,
		Kind:      "task",
		Status: TaskStatus{
			State:     StateCompleted,
			Timestamp: Timestamp(),
			Message: &A2AMessage{
				Kind:      "message",
				Role:      RoleAgent,
				MessageID: uuid.New().String(),
				TaskID:    taskID,
				Parts: []MessagePart{
					TextPart(responseText),
				},
			},
		},
		Artifacts: []Artifact{
			{
				ArtifactID: uuid.New().String(),
				Name:       "Instagram Content Analysis",
				Parts: []MessagePart{
					TextPart(responseText),
				},
			},
			{
				ArtifactID: uuid.New().String(),
				Name:       "Instagram Content Analysis Data",
				Parts: []MessagePart{
					DataPart(report),
				},
			},
		},
	}
}

func (h *A2AHandler) createErrorTaskResult(taskID, contextID, state, errorMsg string) TaskResult {
	return TaskResult{
		ID:        taskID,
		ContextID: contextID,
		Kind:      "task",
		Status: TaskStatus{
			State:     state,
			Timestamp: Timestamp(),
			Message: &A2AMessage{
				Kind:      "message",
				Role:      RoleAgent,
				MessageID: uuid.New().String(),
				TaskID:    taskID,
				Parts: []MessagePart{
					TextPart(errorMsg),
				},
			},
		},
	}
}

func (h *A2AHandler) sendSuccessResponse(c *gin.Context, id json.RawMessage, result interface{}) {
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	})
}

func (h *A2AHandler) sendErrorResponse(c *gin.Context, id json.RawMessage, message string, code int) {
	h.logger.Info("sending JSON-RPC error", zap.Int("code", code), zap.String("message", message))

	// JSON-RPC errors are sent with 200 OK
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &JSONRPCError{
			Code:    code,
			Message: message,
		},
	})
}
