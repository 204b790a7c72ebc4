package solver

import (
	"github.com/msto63/khwarizmi/internal/khwarizmi/service"
)

// solvedMsg is sent when a solve finished
type solvedMsg struct {
	input string
	resp  *service.SolveResponse
	err   error
}

// entry is one line of the scrollback
type entry struct {
	input string
	resp  *service.SolveResponse
	err   error
}
