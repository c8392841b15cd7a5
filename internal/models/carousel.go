package models

// CarouselItem 首页轮播图
type CarouselItem struct {
	ID    string `json:"id"`
	Src   string `json:"src"`
	Alt   string `json:"alt"`
	Title string `json:"title"`
}

// CarouselPatch 部分更新
type CarouselPatch struct {
	Src   *string `json:"src"`
	Alt   *string `json:"alt"`
	Title *string `json:"title"`
}
