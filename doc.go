// Package specdex provides an embedded Go client for the specdex catalog
// engine: structured specification storage with text search, numeric range
// filtering and side-by-side comparison, backed by Redis.
//
// # Low-level API — explicit control
//
//	client, _ := specdex.New(specdex.WithRedis("localhost:6379", ""))
//	client.Records().Upsert(ctx, specdex.Record{
//	    ID:    "pump-a",
//	    Title: "Industrial Pump A",
//	    Specifications: map[string]map[string]specdex.SpecValue{
//	        "performance": {"max_pressure": {Value: "150", Unit: "PSI"}},
//	    },
//	})
//	results, _ := client.Search().
//	    Text("pump").
//	    Range("performance.max_pressure", 100, 300).
//	    Do(ctx)
//
// # High-level API — schema-first with Go generics
//
//	type Pump struct {
//	    ID          string  `specdex:"id"`
//	    Title       string  `specdex:"title"`
//	    MaxPressure float64 `specdex:"performance.max_pressure,unit=PSI"`
//	    Housing     string  `specdex:"materials.housing"`
//	}
//
//	cat, _ := specdex.NewCatalog[Pump](client)
//	_, _ = cat.Upsert(ctx, Pump{ID: "pump-a", Title: "Industrial Pump A", MaxPressure: 150})
//	hits, _ := cat.Search().Text("pump").Do(ctx)
package specdex
