package engine

import (
	"github.com/txproc/engine/account"
	"github.com/txproc/engine/record"
)

// handlerCommand is the closed set of commands a Handler consumes from its
// inbox. Kept as a small sealed interface plus a type switch rather than
// open-ended polymorphism.
type handlerCommand interface{ isHandlerCommand() }

type executeTransactionCmd struct {
	rec record.WireRecord
}

func (executeTransactionCmd) isHandlerCommand() {}

type commitCmd struct {
	reply chan<- error
}

func (commitCmd) isHandlerCommand() {}

// listenerCommand is the closed set of commands the Listener consumes from
// its inbound channel.
type listenerCommand interface{ isListenerCommand() }

type executeTransactionListenerCmd struct {
	rec record.WireRecord
}

func (executeTransactionListenerCmd) isListenerCommand() {}

type getAccountsStateCmd struct {
	reply chan<- []account.Account
}

func (getAccountsStateCmd) isListenerCommand() {}
