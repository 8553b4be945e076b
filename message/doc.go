// Package message holds the input mailboxes shared between the window's event
// goroutine and the drawing goroutine.
//
// A Mailbox keeps only the most recent payload of one kind together with its
// arrival time. Writers never block; readers either take a fresh payload
// immediately or wait for the next Set, and every wait can be abandoned by
// closing a done channel.
package message
