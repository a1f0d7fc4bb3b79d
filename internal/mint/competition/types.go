package competition

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		SetPending(count int)
		SetProcessed(count int)
		SetHighest(feeRate float64)
		ObserveWinner(feeRate float64)
		ObserveInvariantViolation(kind string)
	}
)
