package chat

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/medstock/medstock/internal/observability"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Turn is one message in the exchange between the caller and the model,
// ordered oldest first. The caller replays prior turns on every request; the
// server keeps no session state.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ModelRequest is one round-trip to the model. A fresh request is built for
// every call because the temperature differs between the query-generation
// and answer phases.
type ModelRequest struct {
	Turns             []Turn
	SystemInstruction string
	Temperature       float64
	MaxOutputTokens   int
}

type ModelClient interface {
	// Ready reports a missing credential without performing a network call.
	Ready() error
	Generate(ctx context.Context, req ModelRequest) (string, error)
}

type QueryRunner interface {
	RunQuery(ctx context.Context, sqlText string) ([]map[string]any, error)
}

type Config struct {
	QueryTemperature  float64
	AnswerTemperature float64
	MaxOutputTokens   int
}

// Pipeline drives one user message through at most two model round-trips and
// at most one database execution, always sequentially.
type Pipeline struct {
	Model  ModelClient
	Store  QueryRunner
	Logger *slog.Logger
	Config Config
}

// Respond returns the final natural-language answer for a user message, given
// the prior conversation supplied by the caller.
func (p *Pipeline) Respond(ctx context.Context, message string, history []Turn) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", &Error{Kind: KindMissingInput, Message: "message is required"}
	}
	if p.Model == nil {
		return "", &Error{Kind: KindMissingCredential, Message: "model client is not configured"}
	}
	if err := p.Model.Ready(); err != nil {
		return "", &Error{Kind: KindMissingCredential, Message: err.Error()}
	}

	turns, instruction := BuildConversation(message, history)

	reply, err := p.generate(ctx, turns, instruction, p.queryTemperature())
	if err != nil {
		return "", &Error{Kind: KindUpstreamFailure, Message: err.Error()}
	}

	decision := Classify(reply)
	if !decision.IsQuery {
		return reply, nil
	}
	observability.ObserveChatToolCall()
	if p.Logger != nil {
		p.Logger.DebugContext(ctx, "assistant requested sql", slog.String("sql", decision.SQL))
	}

	if err := ApproveStatement(decision.SQL); err != nil {
		observability.ObserveRejectedStatement()
		return p.finishWithFeedback(ctx, turns, instruction, reply, rejectionFeedback(err))
	}

	if p.Store == nil {
		return "", &Error{Kind: KindExecutionFailure, Message: "query runner is not configured"}
	}
	rows, execErr := p.Store.RunQuery(ctx, decision.SQL)
	if execErr != nil {
		observability.ObserveAssistantQuery("error")
		if p.Logger != nil {
			p.Logger.WarnContext(ctx, "assistant sql failed", slog.Any("error", execErr))
		}
		return p.finishWithFeedback(ctx, turns, instruction, reply, executionErrorFeedback(execErr))
	}
	observability.ObserveAssistantQuery("ok")

	serialized, err := EncodeRows(rows)
	if err != nil {
		return p.finishWithFeedback(ctx, turns, instruction, reply, executionErrorFeedback(err))
	}
	return p.finishWithFeedback(ctx, turns, instruction, reply, resultFeedback(serialized))
}

// finishWithFeedback runs the second, final model round-trip. Its reply is
// returned verbatim and never re-classified: the pipeline performs at most
// one execution attempt per incoming message.
func (p *Pipeline) finishWithFeedback(ctx context.Context, turns []Turn, instruction, toolCall, feedback string) (string, error) {
	followUp := continueConversation(turns, toolCall, feedback)
	reply, err := p.generate(ctx, followUp, instruction, p.answerTemperature())
	if err != nil {
		return "", &Error{Kind: KindUpstreamFailure, Message: "failed to get a final answer from the model"}
	}
	return reply, nil
}

// continueConversation appends exactly two turns, the model's tool call and
// the synthetic feedback, without mutating the original sequence.
func continueConversation(turns []Turn, toolCall, feedback string) []Turn {
	next := make([]Turn, len(turns), len(turns)+2)
	copy(next, turns)
	next = append(next, Turn{Role: RoleAssistant, Content: toolCall})
	next = append(next, Turn{Role: RoleUser, Content: feedback})
	return next
}

func (p *Pipeline) generate(ctx context.Context, turns []Turn, instruction string, temperature float64) (string, error) {
	start := time.Now()
	reply, err := p.Model.Generate(ctx, ModelRequest{
		Turns:             turns,
		SystemInstruction: instruction,
		Temperature:       temperature,
		MaxOutputTokens:   p.maxOutputTokens(),
	})
	observability.ObserveModelLatency(time.Since(start))
	return reply, err
}

func resultFeedback(serialized string) string {
	return "Here is the data from the database: " + serialized + "\nPlease analyze this data and answer my original question."
}

func executionErrorFeedback(err error) string {
	return "Error executing SQL: " + err.Error() + ". Please try again with a corrected query or explain the issue."
}

// rejectionFeedback describes a statement the safety gate refused. Nothing
// was executed, so the wording differs from executionErrorFeedback.
func rejectionFeedback(err error) string {
	return "Your query was not executed: " + err.Error() + ". Please answer the question in plain language instead."
}

func (p *Pipeline) queryTemperature() float64 {
	if p.Config.QueryTemperature > 0 {
		return p.Config.QueryTemperature
	}
	return 0.2
}

func (p *Pipeline) answerTemperature() float64 {
	if p.Config.AnswerTemperature > 0 {
		return p.Config.AnswerTemperature
	}
	return 0.7
}

func (p *Pipeline) maxOutputTokens() int {
	if p.Config.MaxOutputTokens > 0 {
		return p.Config.MaxOutputTokens
	}
	return 1000
}
