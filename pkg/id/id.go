package id

import (
	"crypto/md5"
	"fmt"
	"io"

	foxuuid "github.com/fox-one/pkg/uuid"
	"github.com/gofrs/uuid"
)

// GenTraceID new random trace id
func GenTraceID() string {
	return GenUUIDString()
}

// GenUUIDString new uuid
func GenUUIDString() string {
	return foxuuid.New()
}

// UUIDFromString derives a stable uuid from text
func UUIDFromString(text string) string {
	h := md5.New()
	_, _ = io.WriteString(h, text)
	sum := h.Sum(nil)
	sum[6] = (sum[6] & 0x0f) | 0x30
	sum[8] = (sum[8] & 0x3f) | 0x80
	return uuid.FromBytesOrNil(sum).String()
}

// TransferTraceID trace id of the idx-th transfer of the operation with traceID,
// payers derive it to pay a deposit or repayment in advance
func TransferTraceID(traceID string, idx int) string {
	if _, err := uuid.FromString(traceID); err != nil {
		traceID = UUIDFromString(traceID)
	}

	return foxuuid.Modify(traceID, fmt.Sprintf("transfer:%d", idx))
}
