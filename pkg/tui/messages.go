package tui

import (
	"github.com/moyu-x/vibecleaner/pkg/assistant"
)

type resultMsg struct {
	result *assistant.Result
}

type errMsg struct {
	err error
}
