package handler_test

import (
	"testing"

	"github.com/dshills/pictor/internal/command"
	"github.com/dshills/pictor/internal/dispatcher/execctx"
	"github.com/dshills/pictor/internal/dispatcher/handler"
)

func TestHandlerFunc(t *testing.T) {
	called := false
	h := handler.NewHandlerFunc(func(act command.Action, ctx *execctx.ExecutionContext) handler.Result {
		called = true
		return handler.Success()
	})

	result := h.Handle(command.Parse("print"), execctx.New())

	if !called {
		t.Error("expected handler function called")
	}
	if !result.IsOK() {
		t.Errorf("expected ok result, got %v", result.Status)
	}
}

func TestHandlerFuncNil(t *testing.T) {
	h := handler.NewHandlerFunc(nil)

	result := h.Handle(command.Action{}, execctx.New())
	if !result.IsError() {
		t.Error("expected error for nil handler function")
	}
}
