// Package redistore backs the flash.Store interface with Redis.
//
// Use it when the application runs as multiple instances: the flash
// cookie carries only an opaque token, and any instance can resolve it
// against the shared Redis. Payloads expire server-side via Redis TTL,
// so abandoned messages (a redirect the client never followed) clean
// themselves up.
//
//	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//
//	r.Use(flash.Middleware(
//	    flash.WithStore(redistore.New(client,
//	        redistore.WithTTL(5*time.Minute),
//	        redistore.WithPrefix("myapp:flash"),
//	    )),
//	))
package redistore
