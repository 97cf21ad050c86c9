// Command coinscache drives a CoinsViewCache against a chosen backend
// (memory or leveldb) for manual inspection: add a coin, spend a coin, and
// flush, reporting cache size and memory usage after the add and the spend.
package main

import (
	"fmt"
	"os"

	"github.com/bsv-blockchain/go-bt/v2/bscript"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/urfave/cli/v2"

	"github.com/bsv-blockchain/coinscache/coins"
	"github.com/bsv-blockchain/coinscache/coins/store"
	"github.com/bsv-blockchain/coinscache/coins/view"
	"github.com/bsv-blockchain/coinscache/settings"
	"github.com/bsv-blockchain/coinscache/ulogger"
)

func main() {
	app := &cli.App{
		Name:  "coinscache",
		Usage: "exercise the UTXO cache core against a backend store",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "backend", Value: "", Usage: "override store_backend (memory|leveldb)"},
			&cli.StringFlag{Name: "leveldb-path", Value: "", Usage: "override store_leveldbPath"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	tSettings := settings.NewSettings()

	if backend := c.String("backend"); backend != "" {
		tSettings.Store.Backend = backend
	}

	if path := c.String("leveldb-path"); path != "" {
		tSettings.Store.LevelDBPath = path
	}

	log := ulogger.New(tSettings.ClientName, ulogger.WithLevel("INFO"))

	backing, closeFn, err := openBackend(tSettings, log)
	if err != nil {
		return err
	}

	defer closeFn()

	cache := view.NewCoinsViewCache(backing)

	var txid chainhash.Hash
	txid[0] = 0x01

	script := &bscript.Script{}
	if err := script.AppendOpcodes(bscript.OpTRUE); err != nil {
		return err
	}

	op := coins.NewOutPoint(txid, 0)

	if err := cache.AddCoin(op, coins.Coin{
		Out:    coins.TxOut{Value: 5000, LockingScript: script},
		Height: 1,
	}, false); err != nil {
		return err
	}

	log.Infof("added coin %s, cache size=%d, memory=%d bytes", op, cache.GetCacheSize(), cache.DynamicMemoryUsage())

	cache.SpendCoin(op, nil)
	log.Infof("spent coin %s, cache size=%d, memory=%d bytes", op, cache.GetCacheSize(), cache.DynamicMemoryUsage())

	if err := cache.Flush(); err != nil {
		return err
	}

	log.Infof("flushed to %s backend", tSettings.Store.Backend)

	return nil
}

func openBackend(tSettings *settings.Settings, log ulogger.Logger) (view.BackingView, func(), error) {
	switch tSettings.Store.Backend {
	case "leveldb":
		ldb, err := store.OpenLevelDBStore(tSettings.Store.LevelDBPath, log)
		if err != nil {
			return nil, nil, err
		}

		return ldb, func() { _ = ldb.Close() }, nil
	default:
		return store.NewMemStore(), func() {}, nil
	}
}
