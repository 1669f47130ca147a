package model

type Category struct {
	CategoryID   int64  `json:"categoryid"`
	CategoryName string `json:"categoryname"`
}
