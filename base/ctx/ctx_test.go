package ctx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type testsuite struct {
	suite.Suite
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestWithValue() {
	c := WithValue(Background(), "chatId", int64(42))
	ts.Equal(int64(42), c.Value("chatId"))
}

func (ts *testsuite) TestWithValues() {
	c := WithValues(Background(), map[string]interface{}{
		"a": "b",
		"c": "d",
	})
	ts.Equal("b", c.Value("a"))
	ts.Equal("d", c.Value("c"))
}

func (ts *testsuite) TestWithLogField() {
	c := WithLogField(Background(), "refreshId", "abc")
	ts.Nil(c.Value("refreshId"))
}

func (ts *testsuite) TestWithTimeout() {
	c, cancel := WithTimeout(Background(), 50*time.Millisecond)
	defer cancel()
	select {
	case <-c.Done():
	case <-time.After(time.Second):
		ts.Fail("timeout not honored")
	}
}

func (ts *testsuite) TestWithCancel() {
	c, cancel := WithCancel(Background())
	cancel()
	<-c.Done()
	ts.Error(c.Err())
}
