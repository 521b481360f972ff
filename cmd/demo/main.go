package main

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sagarsuperuser/gcra"
)

func main() {
	// Demo caller keeping its GCRA state in Redis between checks.
	store, err := newStateStore("tcp", "127.0.0.1:6379", 4, "demo:")
	if err != nil {
		log.Fatalf("redis client: %v", err)
	}
	defer store.Close()

	quota := gcra.PerSecond(3) // 3 req/sec
	key := "gcra"

	// Clean slate.
	if err := store.Delete(key); err != nil {
		log.Fatalf("reset: %v", err)
	}

	check := func(label string, cost uint32) {
		state, err := store.Load(key)
		if err != nil {
			log.Fatalf("%s: %v", label, err)
		}
		now := time.Now()
		err = state.CheckAndModifyAt(quota, now, cost)

		var (
			until        *gcra.DeniedUntilError
			indefinitely *gcra.DeniedIndefinitelyError
		)
		switch {
		case err == nil:
			if err := store.Save(key, state, now); err != nil {
				log.Fatalf("%s: %v", label, err)
			}
			fmt.Printf("%s cost=%d allowed remaining=%d reset_after=%v\n",
				label, cost, state.RemainingResources(quota, now), state.ResetAfter(now))
		case errors.As(err, &until):
			fmt.Printf("%s cost=%d denied retry_after=%v\n", label, cost, until.RetryAfter(now))
		case errors.As(err, &indefinitely):
			fmt.Printf("%s cost=%d never allowed: %v\n", label, cost, err)
		}
	}

	fmt.Println("---- issuing 5 sequential requests (cost=1) ----")
	for i := 1; i <= 5; i++ {
		check(fmt.Sprintf("#%d", i), 1)
	}

	fmt.Println("\n---- large cost request (cost=5) ----")
	check("large", 5)

	fmt.Println("\n---- give one unit back ----")
	state, err := store.Load(key)
	if err != nil {
		log.Fatalf("revert: %v", err)
	}
	now := time.Now()
	_ = state.RevertAt(quota, now, 1)
	if err := store.Save(key, state, now); err != nil {
		log.Fatalf("revert: %v", err)
	}
	check("after revert", 1)

	fmt.Println("\nWait 1s and try again (cost=1)...")
	time.Sleep(1000 * time.Millisecond)
	check("retry", 1)
	fmt.Printf("active redis conns=%d\n", store.NumActiveConns())
}
