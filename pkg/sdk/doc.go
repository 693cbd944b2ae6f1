// Package searchtools embeds the searchtools query layer in a Go program.
//
// The client compiles structured filters into the Meilisearch filter
// grammar, applies the per-index time-field and expiry policies, and
// returns the same envelopes the HTTP tool server does.
//
//	client, _ := searchtools.New(ctx,
//	    searchtools.WithEngine("http://localhost:7700", os.Getenv("MEILISEARCH_MASTER_KEY")),
//	    searchtools.WithTimeMode(searchtools.TimeModeTimestamp),
//	    searchtools.WithIndex(searchtools.IndexProfile{
//	        Name:        "supply_demands",
//	        Label:       "供需信息",
//	        TimeFields:  []string{"createdAt", "updatedAt", "expiresAt"},
//	        ExpiryField: "expiresAt",
//	        HideExpired: true,
//	    }),
//	)
//	defer client.Close()
//
//	res := client.Search(ctx, "supply_demands", searchtools.SearchParams{
//	    Keyword: "纸箱",
//	    Filter:  map[string]any{"createdAt": map[string]any{"gte": "2025-09-09T00:00:00Z"}},
//	    Sort:    []string{"createdAt:desc"},
//	})
//	if err := res.Err(); err != nil { ... }
//
// Compile runs the same compilation offline and returns the clauses without
// contacting the engine.
package searchtools
