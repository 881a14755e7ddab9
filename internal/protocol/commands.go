// Copyright (2015) Sandia Corporation.
// Under the terms of Contract DE-AC04-94AL85000 with Sandia Corporation,
// the U.S. Government retains certain rights in this software.

package protocol

// Command codes of the peer daemon's wire protocol. These are fixed
// by the daemon, not chosen by this client; the core consumes only
// the subset enumerated here (spec §6).
const (
	cmdRun                = 101
	cmdListThreads        = 102
	cmdThreadCreate       = 103
	cmdThreadKill         = 104
	cmdThreadSuspend      = 105
	cmdThreadRun          = 106
	cmdStepInto           = 107
	cmdStepOver           = 108
	cmdStepReturn         = 109
	cmdSetBreak           = 111
	cmdRemoveBreak        = 112
	cmdEvaluateExpression = 113
	cmdSmartStepInto      = 128
	cmdVersion            = 501
)

// breakpointAddressing selects how the daemon should address
// breakpoints: by client-assigned id (the default) or by line number.
type breakpointAddressing string

const (
	AddressByID   breakpointAddressing = "ID"
	AddressByLine breakpointAddressing = "LINE"
)
