package types

type PositionSide string

type PositionStatus string

type InstrumentKind string

type FundType string

type TransactionType string

type TransactionStatus string

const (
	PositionSideBuy  PositionSide = "buy"
	PositionSideSell PositionSide = "sell"
)

const (
	PositionStatusOpen   PositionStatus = "open"
	PositionStatusClosed PositionStatus = "closed"
)

const (
	InstrumentKindCrypto    InstrumentKind = "crypto"
	InstrumentKindForex     InstrumentKind = "forex"
	InstrumentKindIndex     InstrumentKind = "index"
	InstrumentKindCommodity InstrumentKind = "commodity"
	InstrumentKindStock     InstrumentKind = "stock"
)

const (
	FundTypeReal  FundType = "real"
	FundTypeDemo  FundType = "demo"
	FundTypeBonus FundType = "bonus"
)

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypeProfit     TransactionType = "profit"
	TransactionTypeLoss       TransactionType = "loss"
)

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)
