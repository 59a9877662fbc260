package auth

import (
	"context"
	"log"
	"sync"
	"time"
)

// refreshLead is how long before expiry the Watcher refreshes.  Sessions
// already inside the lead window are refreshed immediately rather than
// waiting on a timer.
const refreshLead = 5 * time.Minute

// SessionSource is the slice of Service the Watcher needs.  *Service
// satisfies it.
type SessionSource interface {
	CurrentSession(ctx context.Context, access, refresh string) (*Session, error)
	Refresh(ctx context.Context, refresh string) (*Session, error)
	Subscribe(fn func(Event)) func()
}

// Watcher maintains a live view of one session for long-running clients
// (the admin SPA shell, background jobs acting as the admin).  It loads
// the initial session once, listens for sign-in/sign-out events, and
// refreshes the token pair before it expires so consumers always read a
// valid session.
type Watcher struct {
	src     SessionSource
	nowFunc func() time.Time

	mu      sync.Mutex
	sess    *Session
	err     error
	loaded  bool
	timer   *time.Timer
	unsub   func()
	stopped bool
}

// NewWatcher starts watching the session identified by the given token
// pair.  Stop must be called to release the timer and subscription.
func NewWatcher(ctx context.Context, src SessionSource) *Watcher {
	w := &Watcher{src: src, nowFunc: time.Now}
	w.unsub = src.Subscribe(w.onEvent)

	sess, err := src.CurrentSession(ctx, "", "")
	w.mu.Lock()
	w.setLocked(sess, err)
	w.loaded = true
	w.mu.Unlock()
	return w
}

// Adopt replaces the watched session, e.g. after reading cookies on a
// new request or completing a sign-in outside the event stream.
func (w *Watcher) Adopt(ctx context.Context, access, refresh string) {
	sess, err := w.src.CurrentSession(ctx, access, refresh)
	w.mu.Lock()
	defer w.mu.Unlock()
	w.setLocked(sess, err)
	w.loaded = true
}

// Session returns the latest known session (nil when signed out), whether
// the initial load has completed, and the last load error.  The error is
// cleared by the next successful update; an absent session is not an
// error.
func (w *Watcher) Session() (sess *Session, loaded bool, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sess, w.loaded, w.err
}

// Stop cancels the refresh timer and the event subscription.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	if w.unsub != nil {
		w.unsub()
		w.unsub = nil
	}
}

func (w *Watcher) onEvent(evt Event) {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch evt.Kind {
	case EventSignedOut:
		w.setLocked(nil, nil)
	case EventSignedIn, EventTokenRefreshed:
		w.setLocked(evt.Session, nil)
	}
	w.loaded = true
}

// setLocked records the new state and (re)arms the refresh timer.  Held
// under w.mu.
func (w *Watcher) setLocked(sess *Session, err error) {
	if err != nil {
		// Keep the previous session visible; consumers decide how to
		// degrade.  The error clears on the next successful update.
		w.err = err
		return
	}
	w.err = nil
	w.sess = sess
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	if sess == nil || w.stopped {
		return
	}
	wait := sess.ExpiresAt.Sub(w.nowFunc()) - refreshLead
	if wait <= 0 {
		// Already inside the lead window: refresh now instead of
		// scheduling.
		go w.refresh(sess.RefreshToken)
		return
	}
	w.timer = time.AfterFunc(wait, func() { w.refresh(sess.RefreshToken) })
}

func (w *Watcher) refresh(token string) {
	w.mu.Lock()
	stopped := w.stopped
	w.mu.Unlock()
	if stopped {
		// A timer can fire concurrently with Stop; don't rotate the
		// token server-side for a watcher nobody is reading.
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	sess, err := w.src.Refresh(ctx, token)
	if err != nil {
		log.Printf("auth: session refresh failed: %v", err)
		w.mu.Lock()
		w.err = err
		w.mu.Unlock()
		return
	}
	// Refresh notifies subscribers, so onEvent normally lands first;
	// setLocked is idempotent for the same session.
	w.mu.Lock()
	w.setLocked(sess, nil)
	w.mu.Unlock()
}
