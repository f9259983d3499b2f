package session

import "github.com/gin-gonic/gin"

const contextKey = "session"

func Attach(c *gin.Context, s *Session) {
	c.Set(contextKey, s)
}

func From(c *gin.Context) *Session {
	v, ok := c.Get(contextKey)
	if !ok {
		return nil
	}
	s, _ := v.(*Session)
	return s
}

// Current is the principal of the request, if it is authenticated.
func Current(c *gin.Context) (Principal, bool) {
	return From(c).Principal()
}
