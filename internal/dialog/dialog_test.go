package dialog_test

import (
	"testing"

	"github.com/dshills/pictor/internal/dialog"
	"github.com/dshills/pictor/internal/message"
)

type stubWidget struct {
	name string
}

func (w *stubWidget) Name() string { return w.name }

func TestRecorder(t *testing.T) {
	rec := dialog.NewRecorder()

	w := &stubWidget{name: "cat.jpg"}
	rec.Show(dialog.Request{Kind: dialog.KindPrint, Widget: w})
	rec.Show(dialog.Request{Kind: dialog.KindPrintPreview, Widget: w})

	reqs := rec.Requests()
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(reqs))
	}
	if reqs[0].Kind != dialog.KindPrint || reqs[0].Widget != w {
		t.Errorf("unexpected first request: %+v", reqs[0])
	}
	if reqs[1].Kind != dialog.KindPrintPreview {
		t.Errorf("unexpected second request: %+v", reqs[1])
	}

	rec.Reset()
	if len(rec.Requests()) != 0 {
		t.Error("expected no requests after reset")
	}
}

func TestServiceFunc(t *testing.T) {
	var got dialog.Request
	svc := dialog.ServiceFunc(func(req dialog.Request) { got = req })

	svc.Show(dialog.Request{Kind: dialog.KindPrint})
	if got.Kind != dialog.KindPrint {
		t.Errorf("expected print request, got %+v", got)
	}
}

func TestStatusFallback(t *testing.T) {
	bus := message.NewBus()
	var msgs []message.Message
	bus.SubscribeFunc(func(msg message.Message) { msgs = append(msgs, msg) })

	svc := dialog.NewStatusFallback(bus)
	svc.Show(dialog.Request{Kind: dialog.KindPrint, Widget: &stubWidget{name: "cat.jpg"}})
	svc.Show(dialog.Request{Kind: dialog.KindPrintPreview})

	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Text != "print: dialog requested for cat.jpg" {
		t.Errorf("unexpected text: %q", msgs[0].Text)
	}
	if msgs[1].Text != "print-preview: dialog requested for none" {
		t.Errorf("unexpected text: %q", msgs[1].Text)
	}
}
