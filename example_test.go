package hoard_test

import (
	"context"
	"fmt"
	"time"

	"github.com/hoardcache/hoard"
)

func ExampleNew() {
	cache, err := hoard.New(hoard.Options{
		MaxBytes: 64 << 20,
	})
	if err != nil {
		panic(err)
	}
	defer cache.Close(context.Background())

	if _, err := cache.Set("greeting", []byte("hello"), time.Minute); err != nil {
		panic(err)
	}
	if v, ok := cache.Get("greeting"); ok {
		fmt.Println(string(v))
	}
	// Output: hello
}
