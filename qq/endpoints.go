package qq

import (
	"context"
	"io"

	"github.com/kbukum/qqconnect/errors"
	"github.com/kbukum/qqconnect/httpclient"
	"github.com/kbukum/qqconnect/validation"
)

// Endpoint names used by the typed helpers.
const (
	EndpointGetUserInfo = "user/get_user_info"
	EndpointAddT        = "t/add_t"
	EndpointAddPicT     = "t/add_pic_t"
)

// UserInfo is the profile returned by user/get_user_info.
type UserInfo struct {
	Ret             int    `json:"ret"`
	Msg             string `json:"msg"`
	IsLost          int    `json:"is_lost"`
	Nickname        string `json:"nickname"`
	Gender          string `json:"gender"`
	Province        string `json:"province"`
	City            string `json:"city"`
	Year            string `json:"year"`
	Constellation   string `json:"constellation"`
	FigureURL       string `json:"figureurl"`
	FigureURL1      string `json:"figureurl_1"`
	FigureURL2      string `json:"figureurl_2"`
	FigureURLQQ1    string `json:"figureurl_qq_1"`
	FigureURLQQ2    string `json:"figureurl_qq_2"`
	FigureURLQQ     string `json:"figureurl_qq"`
	IsYellowVIP     string `json:"is_yellow_vip"`
	VIP             string `json:"vip"`
	YellowVIPLevel  string `json:"yellow_vip_level"`
	Level           string `json:"level"`
	IsYellowYearVIP string `json:"is_yellow_year_vip"`
}

// AddTParams are the parameters of t/add_t and t/add_pic_t.
type AddTParams struct {
	Content   string `url:"content" validate:"required"`
	ClientIP  string `url:"clientip,omitempty" validate:"omitempty,ip"`
	Longitude string `url:"longitude,omitempty"`
	Latitude  string `url:"latitude,omitempty"`
	SyncFlag  int    `url:"syncflag,omitempty" validate:"min=0,max=1"`
}

// TweetResult is the response of t/add_t and t/add_pic_t.
type TweetResult struct {
	Ret     int    `json:"ret"`
	Msg     string `json:"msg"`
	ErrCode int    `json:"errcode"`
	Data    struct {
		ID   string `json:"id"`
		Time int64  `json:"time"`
	} `json:"data"`
}

// GetUserInfo fetches the authorized user's profile.
func (c *Client) GetUserInfo(ctx context.Context) (*UserInfo, error) {
	res, err := c.get.Call(ctx, EndpointGetUserInfo, nil)
	if err != nil {
		return nil, err
	}
	var info UserInfo
	if err := res.Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}

// AddT posts a text message.
func (c *Client) AddT(ctx context.Context, p AddTParams) (*TweetResult, error) {
	params, err := addTParams(p)
	if err != nil {
		return nil, err
	}
	return decodeTweet(c.post.Call(ctx, EndpointAddT, params))
}

// AddPicT posts a message with a picture. Naming pic with httpclient.NewFile
// lets its content type be derived from the file extension.
func (c *Client) AddPicT(ctx context.Context, p AddTParams, pic io.Reader) (*TweetResult, error) {
	if pic == nil {
		return nil, errors.MissingField("pic")
	}
	params, err := addTParams(p)
	if err != nil {
		return nil, err
	}
	params["pic"] = pic
	return decodeTweet(c.upload.Call(ctx, EndpointAddPicT, params))
}

func addTParams(p AddTParams) (httpclient.Params, error) {
	if err := validation.ValidateStruct(p); err != nil {
		return nil, err
	}
	return httpclient.ParamsFromStruct(p)
}

func decodeTweet(res *httpclient.Result, err error) (*TweetResult, error) {
	if err != nil {
		return nil, err
	}
	var out TweetResult
	if err := res.Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
