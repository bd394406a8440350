// Package notify fans configuration changes out to observers.
//
// An observer either sees every change or only those under a dotted path
// prefix: a subscription to "colors" receives "colors.text". Reload and
// error changes carry no path and reach everyone. Observers run
// synchronously on the goroutine that calls Notify, in subscription order.
package notify

import (
	"slices"
	"strings"
	"sync"
)

// ChangeType identifies the kind of configuration change.
type ChangeType int

const (
	ChangeSet    ChangeType = iota // a setting took a new value
	ChangeReload                   // the file was re-read
	ChangeError                    // a reload failed; previous settings stay
)

var changeNames = map[ChangeType]string{
	ChangeSet:    "set",
	ChangeReload: "reload",
	ChangeError:  "error",
}

func (c ChangeType) String() string {
	if name, ok := changeNames[c]; ok {
		return name
	}
	return "unknown"
}

// Change describes one configuration change.
type Change struct {
	Path     string // dotted setting path; empty for reload and error
	Type     ChangeType
	OldValue any
	NewValue any
	Source   string // file the change came from
	Err      error  // set for ChangeError
}

// Observer receives change notifications.
type Observer func(change Change)

// Subscription is returned by Subscribe; Unsubscribe stops delivery.
type Subscription struct {
	prefix   string
	observer Observer
	notifier *Notifier
}

// Unsubscribe removes the subscription. It is safe on a nil receiver and
// may be called more than once.
func (s *Subscription) Unsubscribe() {
	if s != nil && s.notifier != nil {
		s.notifier.remove(s)
	}
}

func (s *Subscription) wants(path string) bool {
	return path == "" || s.prefix == "" || covers(s.prefix, path)
}

// Notifier holds subscriptions.
type Notifier struct {
	mu     sync.RWMutex
	subs   []*Subscription
	closed bool
}

// New creates an empty Notifier.
func New() *Notifier {
	return &Notifier{}
}

// Subscribe registers an observer for every change.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	return n.SubscribePath("", observer)
}

// SubscribePath registers an observer for changes at or below prefix.
func (n *Notifier) SubscribePath(prefix string, observer Observer) *Subscription {
	s := &Subscription{prefix: prefix, observer: observer, notifier: n}
	n.mu.Lock()
	if !n.closed {
		n.subs = append(n.subs, s)
	}
	n.mu.Unlock()
	return s
}

// Notify delivers change to the matching observers.
func (n *Notifier) Notify(change Change) {
	n.mu.RLock()
	var targets []Observer
	for _, s := range n.subs {
		if s.wants(change.Path) {
			targets = append(targets, s.observer)
		}
	}
	n.mu.RUnlock()

	for _, obs := range targets {
		obs(change)
	}
}

func (n *Notifier) NotifySet(path string, oldValue, newValue any, source string) {
	n.Notify(Change{Path: path, Type: ChangeSet, OldValue: oldValue, NewValue: newValue, Source: source})
}

func (n *Notifier) NotifyReload(source string) {
	n.Notify(Change{Type: ChangeReload, Source: source})
}

func (n *Notifier) NotifyError(source string, err error) {
	n.Notify(Change{Type: ChangeError, Source: source, Err: err})
}

// Close drops every subscription and ignores later ones.
func (n *Notifier) Close() {
	n.mu.Lock()
	n.closed = true
	n.subs = nil
	n.mu.Unlock()
}

func (n *Notifier) remove(s *Subscription) {
	n.mu.Lock()
	n.subs = slices.DeleteFunc(n.subs, func(x *Subscription) bool { return x == s })
	n.mu.Unlock()
}

// covers reports whether path equals prefix or lies below it.
func covers(prefix, path string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+".")
}
