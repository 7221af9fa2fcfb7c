package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/resolver"
)

type stubDriver struct {
	inputs    []string
	selectIdx []int
	confirm   []bool
	textAreas []string
	failWith  error

	inputPos   int
	selectPos  int
	confirmPos int
	textPos    int
	messages   []string
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.messages = append(s.messages, cfg.Message)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	if cfg.Validator != nil {
		if err := cfg.Validator(val); err != nil {
			return "", err
		}
	}
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	s.messages = append(s.messages, cfg.Message)
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.messages = append(s.messages, cfg.Message)
	if s.failWith != nil {
		return 0, s.failWith
	}
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	s.messages = append(s.messages, cfg.Message)
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func TestBuild_Text(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{field.KindText.Code()},
		inputs:    []string{"Test field", " texttest ", "Test text"},
		confirm:   []bool{false, true},
	}

	req, err := Build(context.Background(), driver, "FooForms")
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	want := resolver.Request{
		Namespace: "FooForms",
		Label:     "Test field",
		Kind:      0,
		Value:     "Test text",
		Required:  true,
		Name:      "texttest",
		ID:        "texttest",
	}
	if diff := cmp.Diff(want, req); diff != "" {
		t.Fatalf("request mismatch (-want +got):\n%s", diff)
	}
	wantMessages := []string{"Field kind", "Label", "Name", "Value", "Disabled?", "Required?"}
	if diff := cmp.Diff(wantMessages, driver.messages); diff != "" {
		t.Fatalf("prompt order mismatch (-want +got):\n%s", diff)
	}

	out, err := resolver.New().Render(req)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != `<label for="texttest">Test field</label><input type="text" name="texttest" id="texttest" value="Test text" />` {
		t.Fatalf("unexpected markup: %s", out)
	}
}

func TestBuild_CompositeAsksForOptions(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{field.KindRadioGroup.Code()},
		inputs:    []string{"Pick", "grp", "bar"},
		textAreas: []string{"foo\nbar\n"},
		confirm:   []bool{true, false},
	}

	req, err := Build(context.Background(), driver, "")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if req.Options != "foo\nbar" || req.Value != "bar" || !req.Disabled {
		t.Fatalf("unexpected request: %+v", req)
	}
	if req.Kind != field.KindRadioGroup.Code() {
		t.Fatalf("expected radiogroup code, got %d", req.Kind)
	}
}

func TestBuild_CheckboxAsksForState(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{field.KindCheckbox.Code()},
		inputs:    []string{"Agree", "agree"},
		confirm:   []bool{true, false, false},
	}

	req, err := Build(context.Background(), driver, "")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if req.Value != "true" {
		t.Fatalf("expected checked checkbox, got %+v", req)
	}
	if driver.textPos != 0 {
		t.Fatalf("expected no options prompt for leaf kinds")
	}
}

func TestBuild_Errors(t *testing.T) {
	if _, err := Build(context.Background(), nil, ""); err == nil {
		t.Fatalf("expected nil driver to fail")
	}

	aborted := &stubDriver{failWith: ErrAborted}
	if _, err := Build(context.Background(), aborted, ""); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}

	outOfRange := &stubDriver{selectIdx: []int{99}}
	if _, err := Build(context.Background(), outOfRange, ""); !errors.Is(err, field.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}

	blankName := &stubDriver{
		selectIdx: []int{0},
		inputs:    []string{"Label", "   "},
	}
	if _, err := Build(context.Background(), blankName, ""); err == nil {
		t.Fatalf("expected blank name to be rejected")
	}
}
