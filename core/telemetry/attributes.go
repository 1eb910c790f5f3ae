package telemetry

import (
	"github.com/anoideaopen/market/core/contracts"
	"go.opentelemetry.io/otel/attribute"
)

type MethodTypeNum int

func (t MethodTypeNum) String() string {
	switch t {
	case MethodQuery:
		return "query"
	case MethodTx:
		return "tx"
	case MethodUnknown:
		fallthrough
	default:
		return "unknown"
	}
}

const (
	MethodUnknown MethodTypeNum = iota
	MethodQuery
	MethodTx
)

func MethodType(t MethodTypeNum) attribute.KeyValue {
	return attribute.String("method_type", t.String())
}

// Contract describes the call target of a span.
func Contract(ref contracts.Reference) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("contract.kind", ref.Kind.String()),
		attribute.String("contract.address", ref.Address.Hex()),
	}
}

func TxHash(hash string) attribute.KeyValue {
	return attribute.String("tx.hash", hash)
}
