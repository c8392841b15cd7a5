package utils

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

// VisitorBucket 访客 ID 中的时间粒度，同一桶内的重复访问只计一次
const VisitorBucket = 10 * time.Second

// HashIP 点赞用的投票者身份
func HashIP(ip string) string {
	hash := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(hash[:16])
}

// VisitorID 阅读量去重用的访客 ID：md5(ip-ua-时间桶) 的前 16 位。
// 时间桶滚动后同一访客会被重新计数。
func VisitorID(ip, userAgent string, now time.Time) string {
	bucket := now.UnixMilli() / VisitorBucket.Milliseconds()
	sum := md5.Sum([]byte(ip + "-" + userAgent + "-" + strconv.FormatInt(bucket, 10)))
	return hex.EncodeToString(sum[:])[:16]
}
