package server

import (
	"database/sql"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/crystal-mush/mudbits/pkg/events"
	"github.com/crystal-mush/mudbits/pkg/gamedb"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// JournalEntry is one recorded channel message.
type JournalEntry struct {
	ID      string
	Channel string
	Source  gamedb.DBRef
	Sender  string
	Text    string
	Sent    time.Time
}

// Journal records channel traffic to SQLite so players can review what
// they missed. It subscribes globally to the event bus and stores every
// channel message; older entries are purged on a retention timer.
type Journal struct {
	mu        sync.Mutex
	db        *sql.DB
	retention time.Duration
	done      chan struct{}
	closed    bool
}

const journalSchema = `
CREATE TABLE IF NOT EXISTS messages (
	id      TEXT PRIMARY KEY,
	channel TEXT NOT NULL,
	source  INTEGER NOT NULL,
	sender  TEXT NOT NULL,
	body    TEXT NOT NULL,
	sent_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_channel_sent ON messages(channel, sent_at);
`

// OpenJournal opens (creating if needed) the journal database. Retention
// is in hours; zero keeps messages forever.
func OpenJournal(path string, retentionHours int) (*Journal, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if _, err := db.Exec(journalSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init journal schema: %w", err)
	}
	j := &Journal{
		db:        db,
		retention: time.Duration(retentionHours) * time.Hour,
		done:      make(chan struct{}),
	}
	if j.retention > 0 {
		go j.purgeLoop()
	}
	return j, nil
}

// Receive implements events.Subscriber; only channel traffic is recorded.
func (j *Journal) Receive(ev events.Event) {
	if ev.Type != events.EvChannel || ev.Channel == "" {
		return
	}
	sender := ""
	body := ev.Text
	if ev.Data != nil {
		if s, ok := ev.Data["sender"].(string); ok {
			sender = s
		}
		if t, ok := ev.Data["text"].(string); ok {
			body = t
		}
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return
	}
	_, err := j.db.Exec(
		"INSERT INTO messages (id, channel, source, sender, body, sent_at) VALUES (?, ?, ?, ?, ?, ?)",
		uuid.NewString(), ev.Channel, int(ev.Source), sender, body, time.Now().Unix())
	if err != nil {
		log.Printf("journal: record message: %v", err)
	}
}

// Closed implements events.Subscriber.
func (j *Journal) Closed() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.closed
}

// Recent returns the latest entries for a channel, newest last.
func (j *Journal) Recent(channel string, limit int) ([]JournalEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := j.db.Query(
		`SELECT id, channel, source, sender, body, sent_at FROM messages
		 WHERE channel = ? ORDER BY sent_at DESC, id DESC LIMIT ?`, channel, limit)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var entries []JournalEntry
	for rows.Next() {
		var e JournalEntry
		var source int
		var sent int64
		if err := rows.Scan(&e.ID, &e.Channel, &source, &e.Sender, &e.Text, &sent); err != nil {
			return nil, fmt.Errorf("scan journal row: %w", err)
		}
		e.Source = gamedb.DBRef(source)
		e.Sent = time.Unix(sent, 0)
		entries = append(entries, e)
	}
	// reverse to chronological order
	for i, k := 0, len(entries)-1; i < k; i, k = i+1, k-1 {
		entries[i], entries[k] = entries[k], entries[i]
	}
	return entries, rows.Err()
}

// Checkpoint flushes the WAL into the main database file so a plain file
// copy of it is complete.
func (j *Journal) Checkpoint() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return fmt.Errorf("journal is closed")
	}
	_, err := j.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
	return err
}

// purgeLoop deletes expired entries once an hour.
func (j *Journal) purgeLoop() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-j.done:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-j.retention).Unix()
			res, err := j.db.Exec("DELETE FROM messages WHERE sent_at < ?", cutoff)
			if err != nil {
				log.Printf("journal: purge: %v", err)
				continue
			}
			if n, _ := res.RowsAffected(); n > 0 {
				log.Printf("journal: purged %d expired messages", n)
			}
		}
	}
}

// cmdRecap: recap <channel> [count] shows recent channel traffic.
func cmdRecap(g *Game, d *Descriptor, args string, _ []string) {
	if g.Journal == nil {
		d.Send("The message journal is disabled.")
		return
	}
	name, countArg, _ := strings.Cut(strings.TrimSpace(args), " ")
	if name == "" {
		d.Send("Usage: recap <channel> [count]")
		return
	}
	ch := g.GetChannel(name)
	if ch == nil {
		d.Sendf("There is no channel named '%s'.", name)
		return
	}
	if !ch.IsMember(d.Player) {
		d.Sendf("You are not on %s.", ch.Name)
		return
	}
	count := 20
	if n, err := strconv.Atoi(strings.TrimSpace(countArg)); err == nil && n > 0 {
		count = n
	}
	entries, err := g.Journal.Recent(ch.Name, count)
	if err != nil {
		log.Printf("journal: recap %s: %v", ch.Name, err)
		d.Send("The journal is unavailable right now.")
		return
	}
	if len(entries) == 0 {
		d.Sendf("Nothing has been said on %s lately.", ch.Name)
		return
	}
	for _, e := range entries {
		d.Sendf("[%s] %s %s: %s", e.Sent.Format("15:04"), ch.Name, e.Sender, e.Text)
	}
}

// Close stops the purge loop and closes the database.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil
	}
	j.closed = true
	close(j.done)
	return j.db.Close()
}
