// Package lexdex provides WordPiece tokenization and sparse lexical retrieval
// over a precomputed corpus bundle.
//
// A bundle carries the vocabulary, the IDF table, the special token ids and
// every document with its sparse vector. Queries are tokenized with greedy
// longest-prefix matching, weighted by IDF and ranked by dot product.
//
//	client, _ := lexdex.New(
//	    lexdex.WithBundleFile("corpus.cbor.zst"),
//	    lexdex.WithLowercase(true),
//	    lexdex.WithQueryCache(4096),
//	)
//	hits, _ := client.Search(ctx, "running shoes", 5)
//
// Several queries can be ranked independently or fused into one list:
//
//	lists, _ := client.Query("running", "jogging").Limit(10).DoEach(ctx)
//	fused, _ := client.Query("running", "jogging").Fused().Do(ctx)
package lexdex
