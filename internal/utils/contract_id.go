package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewContractID builds a display id for a new contract. The unix-seconds
// prefix keeps ids roughly sortable by creation time; the random suffix
// keeps concurrent creates within the same second from colliding.
func NewContractID(ownerID uint) string {
	suffix := strings.Split(uuid.New().String(), "-")[0]
	return fmt.Sprintf("C%d%d%s", time.Now().Unix(), ownerID, suffix)
}
