package qq

import (
	"bytes"
	"context"
	"mime"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/qqconnect/errors"
	"github.com/kbukum/qqconnect/httpclient"
	"github.com/kbukum/qqconnect/testutil"
)

func TestGetUserInfo(t *testing.T) {
	f := testutil.Setup(t)
	c := authorized(t, f, newClock())

	info, err := c.GetUserInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, info.Ret)
	assert.Equal(t, "Tom", info.Nickname)
	assert.Equal(t, "男", info.Gender)
	assert.Equal(t, "http://qzapp.qlogo.cn/qzapp/100200/OPENID/30", info.FigureURL)
	assert.Equal(t, "0", info.IsYellowVIP)
}

func TestGetUserInfo_Expired(t *testing.T) {
	f := testutil.Setup(t)
	c := newTestClient(t, testConfig(f), newClock())

	_, err := c.GetUserInfo(context.Background())
	assert.True(t, errors.HasCode(err, errors.ErrCodeTokenExpired))
	assert.Zero(t, f.Total())
}

func TestAddT(t *testing.T) {
	f := testutil.Setup(t)
	c := authorized(t, f, newClock())

	res, err := c.AddT(context.Background(), AddTParams{Content: "hello", ClientIP: "10.0.0.1", SyncFlag: 1})
	require.NoError(t, err)
	assert.Equal(t, "12345", res.Data.ID)
	assert.EqualValues(t, 1700000000, res.Data.Time)

	req := f.MustLast(t, "/t/add_t")
	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, "hello", req.Form.Get("content"))
	assert.Equal(t, "10.0.0.1", req.Form.Get("clientip"))
	assert.Equal(t, "1", req.Form.Get("syncflag"))
	assert.False(t, req.Form.Has("longitude"))
}

func TestAddT_Validation(t *testing.T) {
	f := testutil.Setup(t)
	c := authorized(t, f, newClock())

	_, err := c.AddT(context.Background(), AddTParams{ClientIP: "not-an-ip"})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidConfig))
	assert.Contains(t, err.Error(), "content: is required")
	assert.Contains(t, err.Error(), "clientip")
	assert.Zero(t, f.Total())
}

func TestAddPicT(t *testing.T) {
	f := testutil.Setup(t)
	c := authorized(t, f, newClock())

	res, err := c.AddPicT(context.Background(), AddTParams{Content: "look"},
		httpclient.NewFile("cat.jpg", strings.NewReader("JPEGDATA")))
	require.NoError(t, err)
	assert.Equal(t, "67890", res.Data.ID)

	req := f.MustLast(t, "/t/add_pic_t")
	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, "look", req.Query.Get("content"))
	assert.Equal(t, "OPENID", req.Query.Get("openid"))
	assert.False(t, req.Query.Has("pic"))

	mediaType, params, err := mime.ParseMediaType(req.ContentType)
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)

	form, err := multipart.NewReader(bytes.NewReader(req.Body), params["boundary"]).ReadForm(1 << 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"look"}, form.Value["content"])
	assert.Equal(t, []string{"TOKEN"}, form.Value["access_token"])
	assert.Equal(t, []string{testAppID}, form.Value["oauth_consumer_key"])
	require.Len(t, form.File["pic"], 1)
	assert.Equal(t, "hidden", form.File["pic"][0].Filename)
	assert.Equal(t, "image/jpeg", form.File["pic"][0].Header.Get("Content-Type"))
}

func TestAddPicT_MissingPicture(t *testing.T) {
	f := testutil.Setup(t)
	c := authorized(t, f, newClock())

	_, err := c.AddPicT(context.Background(), AddTParams{Content: "look"}, nil)
	assert.True(t, errors.HasCode(err, errors.ErrCodeMissingField))
	assert.Zero(t, f.Total())
}
