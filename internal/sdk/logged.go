package sdk

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Entry is one dispatched SDK call.
type Entry struct {
	Time time.Time
	Call string
	Args []string
	Err  error
}

func (e Entry) String() string {
	quoted := make([]string, len(e.Args))
	for i, a := range e.Args {
		quoted[i] = fmt.Sprintf("%q", a)
	}
	s := e.Call + "(" + strings.Join(quoted, ", ") + ")"
	if e.Err != nil {
		s += " failed: " + e.Err.Error()
	}
	return s
}

// Journal is a bounded, ordered record of recent calls (oldest first).
type Journal struct {
	mu      sync.Mutex
	size    int
	entries []Entry
}

// NewJournal keeps at most size entries; size <= 0 disables recording.
func NewJournal(size int) *Journal { return &Journal{size: size} }

func (j *Journal) Add(e Entry) {
	if j == nil || j.size <= 0 {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, e)
	if over := len(j.entries) - j.size; over > 0 {
		j.entries = append(j.entries[:0], j.entries[over:]...)
	}
}

// Entries returns a copy of the journal.
func (j *Journal) Entries() []Entry {
	if j == nil {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]Entry(nil), j.entries...)
}

// Logged decorates a Client: every call is logged and journaled.
type Logged struct {
	next    Client
	log     *log.Logger
	journal *Journal
	now     func() time.Time
}

func NewLogged(next Client, logger *log.Logger, journal *Journal) *Logged {
	return &Logged{next: next, log: logger, journal: journal, now: time.Now}
}

func (l *Logged) Logout(ctx context.Context) error {
	return l.record(CallLogout, nil, l.next.Logout(ctx))
}

func (l *Logged) Track(ctx context.Context, action string) error {
	return l.record(CallTrack, []string{action}, l.next.Track(ctx, action))
}

func (l *Logged) SetAttribute(ctx context.Context, key, value string) error {
	return l.record(CallSetAttribute, []string{key, value}, l.next.SetAttribute(ctx, key, value))
}

func (l *Logged) SetEmail(ctx context.Context, email string) error {
	return l.record(CallSetEmail, []string{email}, l.next.SetEmail(ctx, email))
}

func (l *Logged) SetUserID(ctx context.Context, userID string) error {
	return l.record(CallSetUserID, []string{userID}, l.next.SetUserID(ctx, userID))
}

func (l *Logged) record(call string, args []string, err error) error {
	l.journal.Add(Entry{Time: l.now(), Call: call, Args: args, Err: err})
	if l.log != nil {
		if err != nil {
			l.log.Error("sdk call failed", "call", call, "args", args, "err", err)
		} else {
			l.log.Info("sdk call", "call", call, "args", args)
		}
	}
	return err
}
