// Package capgains computes the capital-gains tax owed on a sequence of buy and
// sell operations of a single asset.
//
// The core is made of:
//   - Position: the running state of the asset, quantity held, weighted
//     average cost and the loss carried forward to offset future profits.
//   - Rules: buying updates the average cost and is never taxed. Selling
//     realizes a profit or a loss against the average cost; a loss is carried
//     forward, a profit is taxed at TaxRate once past losses are deducted,
//     unless the sale value does not exceed ExemptionThreshold.
//   - Processor: applies a batch of operations, in order, to the position it
//     owns and returns one Result per Operation.
//
// Around the core, the package provides the JSON boundary (DecodeBatch and
// EncodeResults) and a Stream to process text input where each line is an
// independent batch evaluated against a fresh Position.
//
// All amounts are exact decimals. They are rounded to cents only when a unit
// cost is decoded or a tax is encoded.
//
// This package serves as the foundational logic for the `cgt` command-line tool.
package capgains
