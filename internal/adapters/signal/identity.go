package signal

import (
	"fmt"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/chathub/internal/domain"
)

// SessionResolver reads the authenticated user id the auth layer stored in
// the cookie session. It is the only source of identity for a connection.
type SessionResolver struct {
	Key string
}

// Resolve returns domain.Anonymous when there is no usable session value.
// Requires the sessions middleware on the route.
func (r SessionResolver) Resolve(c *gin.Context) domain.UserID {
	raw := sessions.Default(c).Get(r.Key)
	if raw == nil {
		return domain.Anonymous
	}

	var s string
	switch v := raw.(type) {
	case string:
		s = v
	case int:
		s = strconv.Itoa(v)
	case int32:
		s = strconv.FormatInt(int64(v), 10)
	case int64:
		s = strconv.FormatInt(v, 10)
	case uint:
		s = strconv.FormatUint(uint64(v), 10)
	case uint32:
		s = strconv.FormatUint(uint64(v), 10)
	case uint64:
		s = strconv.FormatUint(v, 10)
	case fmt.Stringer:
		s = v.String()
	default:
		log.Warn().Str("module", "signal").Str("type", fmt.Sprintf("%T", raw)).Msg("unsupported session identity, treating as anonymous")
		return domain.Anonymous
	}

	id, err := domain.ParseUserID(s)
	if err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("invalid session identity, treating as anonymous")
		return domain.Anonymous
	}
	return id
}
