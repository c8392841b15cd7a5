package models

// About “关于我”页面数据。除固定字段外的其他键原样保留
type About map[string]any
