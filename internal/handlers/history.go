package handlers

import (
	"fmt"
	"net/http"
	"reflect"
	"time"

	"therm_hub/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/schema"
)

const (
	errPastQuery = "start_date and end_date are required; use RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'"
	errPastLoad  = "failed to load readings"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// pastQuery is decoded from the /past query string.
type pastQuery struct {
	StartDate time.Time `schema:"start_date,required"`
	EndDate   time.Time `schema:"end_date,required"`
}

var queryDecoder = newQueryDecoder()

func newQueryDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	d.RegisterConverter(time.Time{}, func(s string) reflect.Value {
		t, err := parseQueryTime(s)
		if err != nil {
			// an invalid Value makes the decoder report a ConversionError
			return reflect.Value{}
		}
		return reflect.ValueOf(t)
	})
	return d
}

// @Summary      Historical readings
// @Description  Stored readings between start_date and end_date inclusive, ordered by time.
// @Tags         history
// @Produce      json
// @Param        start_date  query  string  true  "Start of range (RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD')"  example(2020-03-01T00:00:00-05:00)
// @Param        end_date    query  string  true  "End of range (RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD')"  example(2020-03-02T00:00:00-05:00)
// @Success      200  {array}   models.Reading
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /past [get]
// @Security     BearerAuth
func (h *Handler) past(c *gin.Context) {
	var q pastQuery
	if err := queryDecoder.Decode(&q, c.Request.URL.Query()); err != nil {
		if h.log != nil {
			h.log.Infow("past_bad_query", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": errPastQuery})
		return
	}

	readings, err := h.services.Past(c.Request.Context(), q.StartDate, q.EndDate)
	if err != nil {
		code := statusFor(err)
		msg := errPastLoad
		if code == http.StatusBadRequest {
			msg = err.Error()
		}
		h.logAndJSONError(c, code, msg, "past_query_failed", err, "start", q.StartDate, "end", q.EndDate)
		return
	}
	if readings == nil {
		readings = []models.Reading{}
	}
	c.JSON(http.StatusOK, readings)
}

func parseQueryTime(s string) (time.Time, error) {
	// Try multiple accepted formats, normalizing to UTC.
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf(
		"invalid time format %q, expected one of: "+
			"RFC3339 (e.g. 2020-03-01T00:00:00-05:00), "+
			"'YYYY-MM-DD HH:MM:SS', "+
			"'YYYY-MM-DD'",
		s,
	)
}
