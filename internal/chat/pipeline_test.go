package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestRespondReturnsPlainAnswerDirectly(t *testing.T) {
	model := &scriptedModel{replies: []string{"สวัสดีครับ"}}
	runner := &fakeRunner{}
	p := &Pipeline{Model: model, Store: runner}

	answer, err := p.Respond(context.Background(), "สวัสดี", nil)
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if answer != "สวัสดีครับ" {
		t.Fatalf("answer = %q", answer)
	}
	if len(model.requests) != 1 {
		t.Fatalf("model calls = %d, want 1", len(model.requests))
	}
	if len(runner.statements) != 0 {
		t.Fatalf("statements executed = %d, want 0", len(runner.statements))
	}
}

func TestRespondExecutesApprovedQueryAndAnswers(t *testing.T) {
	toolCall := `{"sql":"SELECT COUNT(*) FROM \"Product\""}`
	model := &scriptedModel{replies: []string{toolCall, "There are 42 products."}}
	runner := &fakeRunner{rows: []map[string]any{{"count": int64(42)}}}
	p := &Pipeline{Model: model, Store: runner}

	answer, err := p.Respond(context.Background(), "มีสินค้ากี่รายการ", nil)
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if answer != "There are 42 products." {
		t.Fatalf("answer = %q", answer)
	}
	if len(runner.statements) != 1 {
		t.Fatalf("statements executed = %d, want 1", len(runner.statements))
	}
	if runner.statements[0] != `SELECT COUNT(*) FROM "Product"` {
		t.Fatalf("statement = %q", runner.statements[0])
	}
	if len(model.requests) != 2 {
		t.Fatalf("model calls = %d, want 2", len(model.requests))
	}

	second := model.requests[1]
	feedback := second.Turns[len(second.Turns)-1]
	if feedback.Role != RoleUser {
		t.Fatalf("feedback role = %q", feedback.Role)
	}
	if !strings.Contains(feedback.Content, "42") {
		t.Fatalf("feedback = %q, want serialized result", feedback.Content)
	}
	if !strings.Contains(feedback.Content, "answer my original question") {
		t.Fatalf("feedback = %q", feedback.Content)
	}
}

func TestRespondSecondCallAppendsExactlyTwoTurns(t *testing.T) {
	toolCall := "```json\n{\"sql\":\"SELECT 1\"}\n```"
	model := &scriptedModel{replies: []string{toolCall, "done"}}
	runner := &fakeRunner{rows: []map[string]any{{"one": int64(1)}}}
	p := &Pipeline{Model: model, Store: runner}

	history := []Turn{
		{Role: RoleUser, Content: "earlier question"},
		{Role: RoleAssistant, Content: "earlier answer"},
	}
	if _, err := p.Respond(context.Background(), "current question", history); err != nil {
		t.Fatalf("Respond() error = %v", err)
	}

	first := model.requests[0].Turns
	second := model.requests[1].Turns
	if len(second) != len(first)+2 {
		t.Fatalf("second call turns = %d, want %d", len(second), len(first)+2)
	}
	for i := range first {
		if second[i] != first[i] {
			t.Fatalf("turn %d mutated: %+v != %+v", i, second[i], first[i])
		}
	}
	if second[len(second)-2].Role != RoleAssistant || second[len(second)-2].Content != toolCall {
		t.Fatalf("appended assistant turn = %+v, want raw tool call", second[len(second)-2])
	}
	if second[len(second)-1].Role != RoleUser {
		t.Fatalf("appended feedback turn role = %q", second[len(second)-1].Role)
	}
}

func TestRespondRejectsDisallowedStatementWithoutExecuting(t *testing.T) {
	model := &scriptedModel{replies: []string{`{"sql":"DELETE FROM \"Product\""}`, "I can only read data."}}
	runner := &fakeRunner{}
	p := &Pipeline{Model: model, Store: runner}

	answer, err := p.Respond(context.Background(), "ลบสินค้าทั้งหมด", nil)
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if answer != "I can only read data." {
		t.Fatalf("answer = %q", answer)
	}
	if len(runner.statements) != 0 {
		t.Fatalf("statements executed = %d, want 0", len(runner.statements))
	}
	if len(model.requests) != 2 {
		t.Fatalf("model calls = %d, want 2", len(model.requests))
	}
	feedback := model.requests[1].Turns[len(model.requests[1].Turns)-1].Content
	if !strings.Contains(feedback, "Only SELECT") {
		t.Fatalf("feedback = %q, want SELECT-only notice", feedback)
	}
	if !strings.Contains(feedback, "was not executed") {
		t.Fatalf("feedback = %q, want rejection wording", feedback)
	}
	if strings.Contains(feedback, "Error executing SQL") {
		t.Fatalf("feedback = %q, must not claim the statement was executed", feedback)
	}
}

func TestRespondFeedsExecutionErrorBackToModel(t *testing.T) {
	model := &scriptedModel{replies: []string{`{"sql":"SELECT * FROM \"Missing\""}`, "That table does not exist."}}
	runner := &fakeRunner{err: errors.New(`relation "Missing" does not exist`)}
	p := &Pipeline{Model: model, Store: runner}

	answer, err := p.Respond(context.Background(), "query missing", nil)
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if answer != "That table does not exist." {
		t.Fatalf("answer = %q", answer)
	}
	if len(runner.statements) != 1 {
		t.Fatalf("statements executed = %d, want exactly 1", len(runner.statements))
	}
	feedback := model.requests[1].Turns[len(model.requests[1].Turns)-1].Content
	if !strings.Contains(feedback, `relation "Missing" does not exist`) {
		t.Fatalf("feedback = %q", feedback)
	}
	if !strings.Contains(feedback, "corrected query") {
		t.Fatalf("feedback = %q", feedback)
	}
}

func TestRespondUsesHigherTemperatureForSecondCall(t *testing.T) {
	model := &scriptedModel{replies: []string{`{"sql":"SELECT 1"}`, "one"}}
	runner := &fakeRunner{rows: []map[string]any{{"one": int64(1)}}}
	p := &Pipeline{Model: model, Store: runner}

	if _, err := p.Respond(context.Background(), "one", nil); err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if model.requests[0].Temperature != 0.2 {
		t.Fatalf("first temperature = %v", model.requests[0].Temperature)
	}
	if model.requests[1].Temperature != 0.7 {
		t.Fatalf("second temperature = %v", model.requests[1].Temperature)
	}
	if model.requests[0].MaxOutputTokens != 1000 {
		t.Fatalf("max output tokens = %d", model.requests[0].MaxOutputTokens)
	}
}

func TestRespondMissingInput(t *testing.T) {
	model := &scriptedModel{}
	p := &Pipeline{Model: model, Store: &fakeRunner{}}

	_, err := p.Respond(context.Background(), "   ", nil)
	if kind, ok := KindOf(err); !ok || kind != KindMissingInput {
		t.Fatalf("err = %v, want missing input", err)
	}
	if len(model.requests) != 0 {
		t.Fatalf("model calls = %d, want 0", len(model.requests))
	}
}

func TestRespondMissingCredentialShortCircuits(t *testing.T) {
	model := &scriptedModel{ready: errors.New("model API key is missing")}
	p := &Pipeline{Model: model, Store: &fakeRunner{}}

	_, err := p.Respond(context.Background(), "hello", nil)
	if kind, ok := KindOf(err); !ok || kind != KindMissingCredential {
		t.Fatalf("err = %v, want missing credential", err)
	}
	if len(model.requests) != 0 {
		t.Fatalf("model calls = %d, want 0", len(model.requests))
	}
}

func TestRespondFirstCallUpstreamFailurePropagates(t *testing.T) {
	model := &scriptedModel{errs: []error{errors.New("model endpoint returned 503")}}
	p := &Pipeline{Model: model, Store: &fakeRunner{}}

	_, err := p.Respond(context.Background(), "hello", nil)
	kind, ok := KindOf(err)
	if !ok || kind != KindUpstreamFailure {
		t.Fatalf("err = %v, want upstream failure", err)
	}
	if !strings.Contains(err.Error(), "503") {
		t.Fatalf("err = %v, want upstream detail", err)
	}
}

func TestRespondSecondCallUpstreamFailureIsGeneric(t *testing.T) {
	model := &scriptedModel{
		replies: []string{`{"sql":"SELECT 1"}`},
		errs:    []error{nil, errors.New("upstream detail")},
	}
	p := &Pipeline{Model: model, Store: &fakeRunner{rows: []map[string]any{{"one": int64(1)}}}}

	_, err := p.Respond(context.Background(), "one", nil)
	kind, ok := KindOf(err)
	if !ok || kind != KindUpstreamFailure {
		t.Fatalf("err = %v, want upstream failure", err)
	}
	if strings.Contains(err.Error(), "upstream detail") {
		t.Fatalf("err = %v, want generic wrapper", err)
	}
}

func TestBuildConversationFoldsSystemTurns(t *testing.T) {
	history := []Turn{
		{Role: RoleSystem, Content: "first override"},
		{Role: RoleUser, Content: "q"},
		{Role: RoleAssistant, Content: "a"},
		{Role: RoleSystem, Content: "last override"},
	}
	turns, instruction := BuildConversation("now", history)
	if instruction != "last override" {
		t.Fatalf("instruction = %q", instruction)
	}
	if len(turns) != 3 {
		t.Fatalf("turns = %d, want 3", len(turns))
	}
	if turns[2].Role != RoleUser || turns[2].Content != "now" {
		t.Fatalf("final turn = %+v", turns[2])
	}
}

func TestBuildConversationDefaultsToSchemaInstruction(t *testing.T) {
	_, instruction := BuildConversation("hello", nil)
	if !strings.Contains(instruction, `"Product"`) {
		t.Fatalf("default instruction missing schema descriptor")
	}
	if !strings.Contains(instruction, "ONLY use SELECT statements") {
		t.Fatalf("default instruction missing SELECT rule")
	}
}

type scriptedModel struct {
	replies  []string
	errs     []error
	requests []ModelRequest
	ready    error
}

func (m *scriptedModel) Ready() error {
	return m.ready
}

func (m *scriptedModel) Generate(_ context.Context, req ModelRequest) (string, error) {
	index := len(m.requests)
	m.requests = append(m.requests, req)
	if index < len(m.errs) && m.errs[index] != nil {
		return "", m.errs[index]
	}
	if index < len(m.replies) {
		return m.replies[index], nil
	}
	return "", nil
}

type fakeRunner struct {
	rows       []map[string]any
	err        error
	statements []string
}

func (f *fakeRunner) RunQuery(_ context.Context, sqlText string) ([]map[string]any, error) {
	f.statements = append(f.statements, sqlText)
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}
