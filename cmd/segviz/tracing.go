package main

import (
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
)

// setupTracing configures the tracing facade from conf. Trace levels are read
// from keys "tracelevel.<name>", the adapter from "tracing.adapter".
func setupTracing(conf schuko.Configuration) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(conf, "tracelevel", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	if err := gtrace.CreateTracers(tracing.GetAdapterFromConfiguration(conf, "tracing.adapter")); err != nil {
		return err
	}
	gtrace.CommandTracer.SetTraceLevel(tracing.TraceLevelFromString(conf.GetString("tracelevel.root")))
	return nil
}

func cmdtracer() tracing.Trace {
	return gtrace.CommandTracer
}
