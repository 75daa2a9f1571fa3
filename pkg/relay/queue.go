package relay

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/beanstalkd/go-beanstalk"
)

// ErrNoJob is returned by Reserve-style calls when no job is ready.
var ErrNoJob = errors.New("relay: no job ready")

// Queue is a thin wrapper around a beanstalkd connection that speaks the
// relay's two tubes. It is not safe for concurrent use; each poll loop owns
// its own Queue.
type Queue struct {
	conn *beanstalk.Conn
}

// DialQueue connects to beanstalkd.
func DialQueue(addr string) (*Queue, error) {
	conn, err := beanstalk.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("relay: dial beanstalkd %s: %w", addr, err)
	}
	return &Queue{conn: conn}, nil
}

// Close closes the queue connection.
func (q *Queue) Close() error {
	if q.conn != nil {
		return q.conn.Close()
	}
	return nil
}

// Put serializes v as JSON and enqueues it on the named tube.
func (q *Queue) Put(tube string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("relay: encode job: %w", err)
	}
	t := beanstalk.Tube{Conn: q.conn, Name: tube}
	if _, err := t.Put(body, 1024, 0, time.Minute); err != nil {
		return fmt.Errorf("relay: put on %s: %w", tube, err)
	}
	return nil
}

// Take reserves the next ready job on the named tube, decodes it into v,
// and deletes it. Returns ErrNoJob when the tube is empty.
func (q *Queue) Take(tube string, v any) error {
	ts := beanstalk.NewTubeSet(q.conn, tube)
	id, body, err := ts.Reserve(0)
	if err != nil {
		if errors.Is(err, beanstalk.ErrTimeout) {
			return ErrNoJob
		}
		return fmt.Errorf("relay: reserve on %s: %w", tube, err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		// Malformed job: delete it so it doesn't wedge the tube.
		q.conn.Delete(id)
		return fmt.Errorf("relay: decode job %d on %s: %w", id, tube, err)
	}
	if err := q.conn.Delete(id); err != nil {
		return fmt.Errorf("relay: delete job %d: %w", id, err)
	}
	return nil
}
