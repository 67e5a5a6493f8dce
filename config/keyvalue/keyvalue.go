// Package keyvalue turns a go-simpler/env tagged configuration struct into a
// sorted list of key/values, and prints them as a shell script that sets the
// variables.
package keyvalue

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"
	"time"
)

// KV is a key/value pair.
type KV struct{ Key, Value string }

// KVSlice is a collection of key/value pairs.
type KVSlice []KV

func (kv KVSlice) Len() int           { return len(kv) }
func (kv KVSlice) Less(i, j int) bool { return kv[i].Key < kv[j].Key }
func (kv KVSlice) Swap(i, j int)      { kv[i], kv[j] = kv[j], kv[i] }

// EnvKV lists the `env` keys of a config struct with their values. cfg must be
// a struct value, not a pointer. Fields tagged `secret:"true"` are listed with
// an empty value.
func EnvKV(cfg any) (m KVSlice) {
	t := reflect.TypeOf(cfg)
	v := reflect.ValueOf(cfg)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		k := f.Tag.Get("env")
		// embedded structs have no key
		if k == "" {
			continue
		}
		var val string
		if f.Tag.Get("secret") != "true" {
			switch fv := v.Field(i).Interface().(type) {
			case string:
				val = fv
			case int, int64, int32, uint64, uint32, uint16, bool, time.Duration:
				val = fmt.Sprint(fv)
			case []string:
				val = strings.Join(fv, ",")
			}
		}
		m = append(m, KV{k, val})
	}
	return
}

// PrintEnv renders the key/values of a config struct to printer.
func PrintEnv(cfg any, printer io.Writer) {
	_, _ = fmt.Fprintln(printer, "#!/usr/bin/env bash")
	kvs := EnvKV(cfg)
	sort.Sort(kvs)
	for _, v := range kvs {
		_, _ = fmt.Fprintf(printer, "export %s=%s\n", v.Key, v.Value)
	}
}
