package credit

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/jhizzard/Strata/market"
)

// Hash returns a structural hash of the trade. Equal trades hash equally.
func (t ResolvedCdsTrade) Hash() uint64 {
	h := hasher{d: xxhash.New()}
	h.str(t.info.ID)
	h.str(t.info.Counterparty)
	h.date(t.info.TradeDate)
	h.date(t.info.SettlementDate)
	t.product.hashInto(&h)
	h.boolean(t.hasFee)
	if t.hasFee {
		h.str(string(t.upfrontFee.Currency()))
		h.float(t.upfrontFee.Amount())
		h.date(t.upfrontFee.Date())
	}
	return h.d.Sum64()
}

// Hash returns a structural hash of the product.
func (c ResolvedCds) Hash() uint64 {
	h := hasher{d: xxhash.New()}
	c.hashInto(&h)
	return h.d.Sum64()
}

func (c ResolvedCds) hashInto(h *hasher) {
	h.str(string(c.buySell))
	h.str(c.legalEntityID)
	h.str(string(c.currency))
	h.float(c.notional)
	h.float(c.fixedRate)
	h.boolean(c.hasRecoveryRate)
	h.float(c.recoveryRate)
	h.date(c.protectionStartDate)
	h.date(c.protectionEndDate)
	h.boolean(c.paymentOnDefault)
	h.int(int64(len(c.periods)))
	for _, p := range c.periods {
		h.date(p.paymentDate)
		h.date(p.startDate)
		h.date(p.endDate)
		h.date(p.effectiveStartDate)
		h.date(p.effectiveEndDate)
		h.float(p.yearFraction)
		h.str(string(p.currency))
		h.float(p.notional)
		h.float(p.fixedRate)
		h.str(p.legalEntityID)
	}
}

type hasher struct {
	d   *xxhash.Digest
	buf [8]byte
}

// str writes the length first so adjacent strings cannot run together.
func (h *hasher) str(s string) {
	h.int(int64(len(s)))
	_, _ = h.d.WriteString(s)
}

func (h *hasher) int(v int64) {
	binary.LittleEndian.PutUint64(h.buf[:], uint64(v))
	_, _ = h.d.Write(h.buf[:])
}

// float adds zero so that -0 and +0 hash the same, as they compare equal.
func (h *hasher) float(v float64) {
	binary.LittleEndian.PutUint64(h.buf[:], math.Float64bits(v+0))
	_, _ = h.d.Write(h.buf[:])
}

func (h *hasher) boolean(b bool) {
	if b {
		h.int(1)
	} else {
		h.int(0)
	}
}

func (h *hasher) date(t time.Time) {
	if t.IsZero() {
		h.int(0)
		return
	}
	h.str(market.FormatDate(t))
}
