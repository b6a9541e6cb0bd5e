package app

import (
	"errors"
	"testing"

	"github.com/dshills/pictor/internal/message"
)

func TestRunnerPrefixes(t *testing.T) {
	application := newTestApp(t)
	runner := application.Runner()

	var external []string
	runner.SetExternal(func(cmdline string) error {
		external = append(external, cmdline)
		return nil
	})
	var searches []string
	runner.SetSearch(func(pattern string) {
		searches = append(searches, pattern)
	})

	if res := runner.Run(":enter image"); !res.IsOK() {
		t.Errorf("colon command result = %+v, want ok", res)
	}
	if res := runner.Run(":!ls /tmp"); !res.IsOK() {
		t.Errorf("external result = %+v, want ok", res)
	}
	if res := runner.Run("/sunset"); !res.IsOK() {
		t.Errorf("search result = %+v, want ok", res)
	}

	if len(external) != 1 || external[0] != "ls /tmp" {
		t.Errorf("external = %v", external)
	}
	if len(searches) != 1 || searches[0] != "sunset" {
		t.Errorf("searches = %v", searches)
	}
}

func TestRunnerEmptyInput(t *testing.T) {
	application := newTestApp(t)
	runner := application.Runner()

	for _, text := range []string{"", "   ", ":", "/"} {
		res := runner.Run(text)
		if res.IsError() {
			t.Errorf("Run(%q) = %+v, want no-op", text, res)
		}
	}
	if application.History().Len() != 0 {
		t.Errorf("empty input should not enter history, got %v", application.History().Commands())
	}
}

func TestRunnerExternalFailure(t *testing.T) {
	application := newTestApp(t)
	runner := application.Runner()
	runner.SetExternal(func(string) error {
		return errors.New("exit status 1")
	})

	var got []message.Message
	application.Bus().SubscribeFunc(func(msg message.Message) {
		got = append(got, msg)
	})

	res := runner.Run(":!false")
	if !res.IsError() {
		t.Fatalf("result = %+v, want error", res)
	}
	if len(got) != 1 || got[0].Kind != message.KindError {
		t.Errorf("messages = %+v, want one error", got)
	}
}

func TestRunnerSearchUnavailable(t *testing.T) {
	application := newTestApp(t)

	var got []message.Message
	application.Bus().SubscribeFunc(func(msg message.Message) {
		got = append(got, msg)
	})

	res := application.Runner().Run("/anything")
	if !res.IsError() {
		t.Fatalf("result = %+v, want error", res)
	}
	if len(got) != 1 || got[0].Text != "search: not available" {
		t.Errorf("messages = %+v", got)
	}
}

func TestRunnerHistoryRecorded(t *testing.T) {
	application := newTestApp(t)
	runner := application.Runner()

	runner.Run(":enter image")
	runner.Run(":enter library")
	runner.Run(":enter image")

	cmds := application.History().Commands()
	if len(cmds) != 2 {
		t.Fatalf("history = %v, want deduplicated 2 entries", cmds)
	}
	if cmds[0] != ":enter image" || cmds[1] != ":enter library" {
		t.Errorf("history order = %v", cmds)
	}
}
