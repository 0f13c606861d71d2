// Package ratelimiter provides an in-memory keyed token bucket and an HTTP
// middleware enforcing it.
//
// Each key starts with Burst tokens and regains one every Interval. State
// lives in process memory, so limits are per replica and reset on restart.
//
//	l, err := ratelimiter.New(ratelimiter.Config{Burst: 5, Interval: time.Minute})
//	if err != nil {
//		return err
//	}
//	defer l.Close()
//
//	r.With(ratelimiter.Middleware(l, func(r *http.Request) string {
//		return clientip.FromContext(r.Context())
//	}, nil)).Post("/contact", submit)
package ratelimiter
