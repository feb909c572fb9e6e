package cache

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/zeebo/blake3"
)

const keySize = 32

// Hash returns the hex encoded blake3 digest of data.
func Hash(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Key returns the cache key of the rule of order n computed by method with
// the given parameters, which must be JSON serializable.
func Key(method string, n int, params interface{}) (string, error) {

	p, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("cannot Key: %w", err)
	}

	buf := new(bytes.Buffer)
	binary.Write(buf, binary.BigEndian, int64(len(method)))
	buf.WriteString(method)
	binary.Write(buf, binary.BigEndian, int64(n))
	buf.Write(p)

	hasher := blake3.New()
	hasher.Write(buf.Bytes())

	return fmt.Sprintf("rule:%s:%d:%s", method, n, hex.EncodeToString(hasher.Sum(nil)[:keySize])), nil
}
