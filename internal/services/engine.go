package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/adcomply/adcomply-backend/internal/compliance"
	"github.com/adcomply/adcomply-backend/internal/platform/httpx"
	"github.com/adcomply/adcomply-backend/internal/platform/logger"
	"github.com/adcomply/adcomply-backend/internal/platform/openai"
	"github.com/adcomply/adcomply-backend/internal/repos"
	"github.com/adcomply/adcomply-backend/internal/types"
)

// ComplianceEngine is the boundary to the generative model: one request/
// response pair per analysis, opaque, possibly slow, possibly failing. A
// failed call mutates nothing beyond the audit log row.
type ComplianceEngine interface {
	Analyze(ctx context.Context, userID uuid.UUID, req *compliance.AnalysisRequest, imageURL string) (*compliance.RawResponse, error)
	Rewrite(ctx context.Context, userID uuid.UUID, content string, issues []compliance.Issue, count int) ([]compliance.RewrittenPost, error)
}

type openaiEngine struct {
	db  *gorm.DB
	log *logger.Logger

	ai      openai.Client
	logRepo repos.EngineCallLogRepo

	timeout time.Duration
	model   string
}

func NewComplianceEngine(db *gorm.DB, baseLog *logger.Logger, ai openai.Client, logRepo repos.EngineCallLogRepo, timeout time.Duration, model string) ComplianceEngine {
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	return &openaiEngine{
		db:      db,
		log:     baseLog.With("service", "ComplianceEngine"),
		ai:      ai,
		logRepo: logRepo,
		timeout: timeout,
		model:   model,
	}
}

const analyzeSystemPrompt = `You are a regulatory compliance reviewer for marketing and advertising content.
You are given the full guideline corpus and one piece of content. Evaluate the
content against every guideline. Report each violation or concern as an issue
with a severity of "critical" (clear violation) or "warning" (needs review),
cite the guideline, and give a concrete remediation. Set overall_status to
"non_compliant" when any critical issue exists, "requires_review" when only
warnings exist, and "compliant" otherwise.`

const rewriteSystemPrompt = `You rewrite marketing and advertising content so it resolves every flagged
compliance issue while keeping the original intent, audience, and tone. Each
option must be a complete replacement for the original content and must not
reintroduce any flagged claim.`

func analyzeSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"overall_status": map[string]any{
				"type": "string",
				"enum": []string{"compliant", "non_compliant", "requires_review"},
			},
			"summary": map[string]any{"type": "string"},
			"issues": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"guideline_reference": map[string]any{"type": "string"},
						"finding":             map[string]any{"type": "string"},
						"severity":            map[string]any{"type": "string", "enum": []string{"critical", "warning"}},
						"recommendation":      map[string]any{"type": "string"},
					},
					"required":             []string{"guideline_reference", "finding", "severity", "recommendation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []string{"overall_status", "summary", "issues"},
		"additionalProperties": false,
	}
}

func rewriteSchema(count int) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"options": map[string]any{
				"type":     "array",
				"minItems": count,
				"maxItems": count,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"option_title": map[string]any{"type": "string"},
						"content":      map[string]any{"type": "string"},
						"explanation":  map[string]any{"type": "string"},
					},
					"required":             []string{"option_title", "content", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []string{"options"},
		"additionalProperties": false,
	}
}

func (e *openaiEngine) Analyze(ctx context.Context, userID uuid.UUID, req *compliance.AnalysisRequest, imageURL string) (*compliance.RawResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: nil request", compliance.ErrInvalidInput)
	}

	payload, err := req.Serialize()
	if err != nil {
		return nil, fmt.Errorf("serialize request: %w", err)
	}
	userPrompt := string(payload)

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	started := time.Now()
	var obj map[string]any
	if req.ContentType == compliance.ContentTypeImage && strings.TrimSpace(imageURL) != "" {
		obj, err = e.ai.GenerateJSONWithImages(callCtx, analyzeSystemPrompt, userPrompt,
			[]openai.ImageInput{{ImageURL: imageURL}}, "compliance_verdict", analyzeSchema())
	} else {
		obj, err = e.ai.GenerateJSON(callCtx, analyzeSystemPrompt, userPrompt, "compliance_verdict", analyzeSchema())
	}
	if err != nil {
		mapped := e.mapEngineError(callCtx, err)
		e.audit(ctx, userID, "analyze", userPrompt, "", mapped, started)
		return nil, mapped
	}

	raw, err := decodeRawResponse(obj)
	if err != nil {
		e.audit(ctx, userID, "analyze", userPrompt, stringifyJSON(obj), err, started)
		return nil, err
	}

	e.audit(ctx, userID, "analyze", userPrompt, stringifyJSON(obj), nil, started)
	return raw, nil
}

func (e *openaiEngine) Rewrite(ctx context.Context, userID uuid.UUID, content string, issues []compliance.Issue, count int) ([]compliance.RewrittenPost, error) {
	if len(issues) == 0 {
		return nil, compliance.ErrNothingToRewrite
	}
	if count <= 0 {
		count = 3
	}

	issueJSON, err := json.Marshal(issues)
	if err != nil {
		return nil, fmt.Errorf("serialize issues: %w", err)
	}
	userPrompt := fmt.Sprintf("Original content:\n%s\n\nFlagged issues:\n%s\n\nReturn %d alternative compliant versions.", content, string(issueJSON), count)

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	started := time.Now()
	obj, err := e.ai.GenerateJSON(callCtx, rewriteSystemPrompt, userPrompt, "compliant_rewrites", rewriteSchema(count))
	if err != nil {
		mapped := e.mapEngineError(callCtx, err)
		e.audit(ctx, userID, "rewrite", userPrompt, "", mapped, started)
		return nil, mapped
	}

	var decoded struct {
		Options []compliance.RewrittenPost `json:"options"`
	}
	if err := roundTrip(obj, &decoded); err != nil {
		wrapped := fmt.Errorf("%w: %v", compliance.ErrEngineContractViolation, err)
		e.audit(ctx, userID, "rewrite", userPrompt, stringifyJSON(obj), wrapped, started)
		return nil, wrapped
	}
	if len(decoded.Options) == 0 {
		wrapped := fmt.Errorf("%w: empty rewrite set", compliance.ErrEngineContractViolation)
		e.audit(ctx, userID, "rewrite", userPrompt, stringifyJSON(obj), wrapped, started)
		return nil, wrapped
	}

	e.audit(ctx, userID, "rewrite", userPrompt, stringifyJSON(obj), nil, started)
	return decoded.Options, nil
}

// mapEngineError classifies a raw client failure into the engine taxonomy.
// A deadline hit on our bounded call context is a timeout; transport, HTTP
// and auth failures are unavailability; everything else means the engine
// returned something that is not a verdict.
func (e *openaiEngine) mapEngineError(callCtx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", compliance.ErrEngineTimeout, err)
	}
	var sc httpx.HTTPStatusCoder
	if errors.As(err, &sc) {
		return fmt.Errorf("%w: %v", compliance.ErrEngineUnavailable, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", compliance.ErrEngineUnavailable, err)
	}
	return fmt.Errorf("%w: %v", compliance.ErrEngineContractViolation, err)
}

func decodeRawResponse(obj map[string]any) (*compliance.RawResponse, error) {
	var raw compliance.RawResponse
	if err := roundTrip(obj, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", compliance.ErrEngineContractViolation, err)
	}
	if strings.TrimSpace(raw.OverallStatus) == "" {
		return nil, fmt.Errorf("%w: missing overall_status", compliance.ErrEngineContractViolation)
	}
	return &raw, nil
}

func roundTrip(obj map[string]any, out any) error {
	b, err := json.Marshal(obj)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func stringifyJSON(obj map[string]any) string {
	b, err := json.Marshal(obj)
	if err != nil {
		return ""
	}
	return string(b)
}

// audit writes the call log row. Best effort: a failed audit write never
// fails the analysis.
func (e *openaiEngine) audit(ctx context.Context, userID uuid.UUID, callType, prompt, response string, callErr error, started time.Time) {
	if e.logRepo == nil {
		return
	}
	usage, _ := json.Marshal(map[string]any{
		"model":       e.model,
		"duration_ms": time.Since(started).Milliseconds(),
	})
	row := &types.EngineCallLog{
		ID:       uuid.New(),
		CallType: callType,
		Model:    e.model,
		Prompt:   prompt,
		Response: response,
		Success:  callErr == nil,
		Usage:    datatypes.JSON(usage),
	}
	if userID != uuid.Nil {
		row.UserID = &userID
	}
	if callErr != nil {
		row.Error = callErr.Error()
	}
	if _, err := e.logRepo.Create(context.WithoutCancel(ctx), nil, row); err != nil {
		e.log.Warn("engine call audit write failed", "call_type", callType, "error", err)
	}
}
