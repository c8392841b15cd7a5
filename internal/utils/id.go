package utils

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID 生成 "<毫秒时间戳>-<随机串>" 形式的记录 ID，按时间大致有序
func NewID() string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + random[:9]
}
