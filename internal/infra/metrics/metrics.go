package metrics

import "sync/atomic"

type Counters struct {
	PaymentsProcessed uint64
	PaymentsApproved  uint64
	PaymentsDeclined  uint64
	PaymentsRejected  uint64
	IssuerFailures    uint64
}

type Snapshot struct {
	PaymentsProcessed uint64 `json:"paymentsProcessed"`
	PaymentsApproved  uint64 `json:"paymentsApproved"`
	PaymentsDeclined  uint64 `json:"paymentsDeclined"`
	PaymentsRejected  uint64 `json:"paymentsRejected"`
	IssuerFailures    uint64 `json:"issuerFailures"`
}

func (c *Counters) IncProcessed() {
	atomic.AddUint64(&c.PaymentsProcessed, 1)
}

func (c *Counters) IncApproved() {
	atomic.AddUint64(&c.PaymentsApproved, 1)
}

func (c *Counters) IncDeclined() {
	atomic.AddUint64(&c.PaymentsDeclined, 1)
}

func (c *Counters) IncRejected() {
	atomic.AddUint64(&c.PaymentsRejected, 1)
}

func (c *Counters) IncIssuerFailure() {
	atomic.AddUint64(&c.IssuerFailures, 1)
}

func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		PaymentsProcessed: atomic.LoadUint64(&c.PaymentsProcessed),
		PaymentsApproved:  atomic.LoadUint64(&c.PaymentsApproved),
		PaymentsDeclined:  atomic.LoadUint64(&c.PaymentsDeclined),
		PaymentsRejected:  atomic.LoadUint64(&c.PaymentsRejected),
		IssuerFailures:    atomic.LoadUint64(&c.IssuerFailures),
	}
}
