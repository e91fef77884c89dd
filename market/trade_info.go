package market

import "time"

// TradeInfo is free-form metadata attached to a trade. The zero value is the
// empty trade info.
type TradeInfo struct {
	ID             string
	Counterparty   string
	TradeDate      time.Time
	SettlementDate time.Time
}

func EmptyTradeInfo() TradeInfo {
	return TradeInfo{}
}

func (i TradeInfo) IsEmpty() bool {
	return i == TradeInfo{}
}

// Normalized returns a copy with dates reduced to calendar dates.
func (i TradeInfo) Normalized() TradeInfo {
	i.TradeDate = DateOnly(i.TradeDate)
	i.SettlementDate = DateOnly(i.SettlementDate)
	return i
}
