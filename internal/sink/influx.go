package sink

import (
	"github.com/nerrad567/loxwatch/internal/infrastructure/influxdb"
	"github.com/nerrad567/loxwatch/internal/monitor"
)

// Influx adapts the InfluxDB client to the monitor's RecordSink contract.
//
// Writes are asynchronous inside the client; failures surface through the
// client's error callback rather than here, so Write never blocks the
// sampling loop.
type Influx struct {
	client *influxdb.Client
}

// NewInflux wraps a connected InfluxDB client as a record sink.
func NewInflux(client *influxdb.Client) *Influx {
	return &Influx{client: client}
}

// Write queues one change record for batched delivery.
//
// Satisfies monitor.RecordSink.
func (s *Influx) Write(rec monitor.ChangeRecord) error {
	s.client.WriteStateChange(rec.UUID, rec.Type, rec.Room, rec.State, rec.Timestamp)
	return nil
}

// Flush blocks until queued points are delivered. Called at the end of a
// run so its tail is not left in the batch buffer.
func (s *Influx) Flush() {
	s.client.Flush()
}
