// Package bot classifies inbound chat messages and produces replies.
package bot

import "strings"

// Command is the closed set of things the bot knows how to do. Every inbound
// message maps to exactly one variant.
type Command int

const (
	CmdUnrecognized Command = iota
	CmdStart
	CmdShowPortfolio
	CmdShowMarket
	CmdShowProfit
	CmdShowNftPulse
)

// String returns the command name for logging.
func (c Command) String() string {
	switch c {
	case CmdStart:
		return "start"
	case CmdShowPortfolio:
		return "portfolio"
	case CmdShowMarket:
		return "market"
	case CmdShowProfit:
		return "profit"
	case CmdShowNftPulse:
		return "nft"
	default:
		return "unrecognized"
	}
}

// Classify maps inbound text to a command. The full text is lowercased and
// matched exactly against the known tokens — no trimming, so a trailing
// space falls through to CmdUnrecognized. Total and pure.
func Classify(text string) Command {
	switch strings.ToLower(text) {
	case "/start":
		return CmdStart
	case "/портфель", "/portfolio":
		return CmdShowPortfolio
	case "/рынок", "/market":
		return CmdShowMarket
	case "/профит", "/profit":
		return CmdShowProfit
	case "/нфт":
		return CmdShowNftPulse
	default:
		return CmdUnrecognized
	}
}
