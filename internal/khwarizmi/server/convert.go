package server

import (
	"time"

	"github.com/msto63/khwarizmi/internal/khwarizmi/service"
	"github.com/msto63/khwarizmi/internal/khwarizmi/store"
	"google.golang.org/protobuf/types/known/structpb"
)

// Message types of the SolveSteps stream
const (
	MessageStep   = "step"
	MessageResult = "result"
)

// ResponseToStruct converts a solve response to its wire form
func ResponseToStruct(resp *service.SolveResponse) (*structpb.Struct, error) {
	steps := make([]interface{}, len(resp.Steps))
	for i, step := range resp.Steps {
		steps[i] = stepFields(step)
	}

	fields := map[string]interface{}{
		"type":        MessageResult,
		"request_id":  resp.RequestID,
		"input":       resp.Input,
		"equation":    resp.Equation,
		"result":      resp.Output,
		"variable":    resp.Variable,
		"solved":      resp.Solved,
		"cached":      resp.Cached,
		"duration_ms": resp.DurationMs,
		"steps":       steps,
	}
	if resp.Value != nil {
		fields["value"] = *resp.Value
	}
	return structpb.NewStruct(fields)
}

// StepToStruct converts a step to a stream message
func StepToStruct(step service.StepView) (*structpb.Struct, error) {
	fields := stepFields(step)
	fields["type"] = MessageStep
	return structpb.NewStruct(fields)
}

// StructToResponse reads a solve response from its wire form
func StructToResponse(s *structpb.Struct) *service.SolveResponse {
	f := s.GetFields()

	resp := &service.SolveResponse{
		RequestID:  f["request_id"].GetStringValue(),
		Input:      f["input"].GetStringValue(),
		Equation:   f["equation"].GetStringValue(),
		Output:     f["result"].GetStringValue(),
		Variable:   f["variable"].GetStringValue(),
		Solved:     f["solved"].GetBoolValue(),
		Cached:     f["cached"].GetBoolValue(),
		DurationMs: f["duration_ms"].GetNumberValue(),
	}
	if v, ok := f["value"]; ok {
		value := v.GetNumberValue()
		resp.Value = &value
	}
	for _, item := range f["steps"].GetListValue().GetValues() {
		resp.Steps = append(resp.Steps, StructToStep(item.GetStructValue()))
	}
	return resp
}

// StructToStep reads a step from a stream message
func StructToStep(s *structpb.Struct) service.StepView {
	f := s.GetFields()
	return service.StepView{
		Index:     int(f["index"].GetNumberValue()),
		Operation: f["operation"].GetStringValue(),
		Equation:  f["equation"].GetStringValue(),
	}
}

// EntriesToList converts history entries to their wire form
func EntriesToList(entries []*store.Entry) (*structpb.ListValue, error) {
	items := make([]interface{}, len(entries))
	for i, e := range entries {
		items[i] = map[string]interface{}{
			"id":          e.ID,
			"timestamp":   e.Timestamp.Format(time.RFC3339Nano),
			"input":       e.Input,
			"output":      e.Output,
			"status":      string(e.Status),
			"error_code":  e.ErrorCode,
			"steps":       e.Steps,
			"duration_ms": e.DurationMs,
			"cached":      e.Cached,
			"source":      e.Source,
		}
	}
	return structpb.NewList(items)
}

// ListToEntries reads history entries from their wire form
func ListToEntries(list *structpb.ListValue) []*store.Entry {
	var entries []*store.Entry
	for _, item := range list.GetValues() {
		f := item.GetStructValue().GetFields()
		ts, _ := time.Parse(time.RFC3339Nano, f["timestamp"].GetStringValue())
		entries = append(entries, &store.Entry{
			ID:         f["id"].GetStringValue(),
			Timestamp:  ts,
			Input:      f["input"].GetStringValue(),
			Output:     f["output"].GetStringValue(),
			Status:     store.Status(f["status"].GetStringValue()),
			ErrorCode:  f["error_code"].GetStringValue(),
			Steps:      int(f["steps"].GetNumberValue()),
			DurationMs: f["duration_ms"].GetNumberValue(),
			Cached:     f["cached"].GetBoolValue(),
			Source:     f["source"].GetStringValue(),
		})
	}
	return entries
}

func stepFields(step service.StepView) map[string]interface{} {
	return map[string]interface{}{
		"index":     step.Index,
		"operation": step.Operation,
		"equation":  step.Equation,
	}
}
