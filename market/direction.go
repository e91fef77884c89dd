package market

import "strings"

// PayReceive says whether a leg is paid or received.
type PayReceive string

const (
	Pay     PayReceive = "PAY"
	Receive PayReceive = "RECEIVE"
)

func ParsePayReceive(s string) (PayReceive, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PAY", "P":
		return Pay, nil
	case "RECEIVE", "REC", "R":
		return Receive, nil
	}
	return "", Invalidf("pay/receive %q is not recognised", s)
}

func (p PayReceive) Valid() bool {
	return p == Pay || p == Receive
}

// Sign is -1 for Pay and +1 for Receive.
func (p PayReceive) Sign() float64 {
	if p == Pay {
		return -1
	}
	return 1
}

// BuySell says whether protection (or any other product) is bought or sold.
type BuySell string

const (
	Buy  BuySell = "BUY"
	Sell BuySell = "SELL"
)

func ParseBuySell(s string) (BuySell, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BUY", "B":
		return Buy, nil
	case "SELL", "S":
		return Sell, nil
	}
	return "", Invalidf("buy/sell %q is not recognised", s)
}

func (b BuySell) Valid() bool {
	return b == Buy || b == Sell
}

// Sign is +1 for Buy and -1 for Sell.
func (b BuySell) Sign() float64 {
	if b == Sell {
		return -1
	}
	return 1
}
