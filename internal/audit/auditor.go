package audit

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"contractScope/internal/explorer"
	"contractScope/internal/model"
)

// ChainReader is the node-side capability the pipeline consumes.
type ChainReader interface {
	Code(ctx context.Context, address common.Address) (string, error)
	Balance(ctx context.Context, address common.Address) (*big.Int, error)
	TransactionCount(ctx context.Context, address common.Address) (uint64, error)
}

// Explorer is the block-explorer capability the pipeline consumes.
type Explorer interface {
	ContractCreation(ctx context.Context, address common.Address) (creator, txHash string, err error)
	TransactionBlockNumber(ctx context.Context, txHash string) (uint64, error)
	BlockTimestamp(ctx context.Context, blockNumber uint64) (uint64, error)
	SourceAndABI(ctx context.Context, address common.Address) (model.VerificationInfo, error)
}

// Config holds runtime settings for the auditor.
type Config struct {
	Chain        string
	MaxRetries   int
	RetryBackoff time.Duration
	StageTimeout time.Duration
}

// Auditor sequences the audit pipeline for one address at a time. Each
// invocation is fully sequential and builds its own report; concurrent
// invocations share nothing mutable.
type Auditor struct {
	cfg      Config
	chain    ChainReader
	explorer Explorer
	logger   *zap.Logger
}

// NewAuditor builds an Auditor with its dependencies.
func NewAuditor(cfg Config, chain ChainReader, exp Explorer, logger *zap.Logger) *Auditor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Auditor{cfg: cfg, chain: chain, explorer: exp, logger: logger}
}

// Audit runs the full pipeline for a normalized address. It always returns
// a report: any failure that escapes the per-stage handling, including a
// panic, is converted here into a degraded report with ErrorNote set and
// IsContract=false. This outer boundary is the only place that may mask an
// unexpected defect, so such cases are logged at Error rather than Warn.
func (a *Auditor) Audit(ctx context.Context, address common.Address) (report model.ContractReport) {
	checksummed := address.Hex()

	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("audit panicked",
				zap.String("address", checksummed),
				zap.Any("panic", r),
			)
			report = a.degradedReport(checksummed, fmt.Sprintf("internal failure: %v", r))
		}
	}()

	report, err := a.run(ctx, address)
	if err != nil {
		a.logger.Error("audit failed",
			zap.String("address", checksummed),
			zap.Error(err),
		)
		return a.degradedReport(checksummed, err.Error())
	}
	return report
}

// run walks the state machine: Start -> Normalized -> Classified, then
// either the non-contract branch (balance + nonce) or the contract branch
// (creation -> verification -> standards/security or bytecode label).
// Errors returned from here are the outer boundary's to handle.
func (a *Auditor) run(ctx context.Context, address common.Address) (model.ContractReport, error) {
	report := model.ContractReport{
		Address:     address.Hex(),
		Chain:       a.cfg.Chain,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}

	code, err := a.fetchCode(ctx, address)
	if err != nil {
		return report, fmt.Errorf("get code: %w", err)
	}

	if isEmptyCode(code) {
		return a.auditAccount(ctx, address, report)
	}

	report.IsContract = true
	report.Bytecode = code

	// Creation provenance resolves independently of verification and may
	// be absent without aborting the audit.
	report.Creation = a.resolveCreation(ctx, address)

	verification := a.resolveVerification(ctx, address)
	report.IsVerified = verification.IsVerified

	if verification.IsVerified {
		report.ContractName = verification.ContractName
		report.SourceCode = verification.SourceCode
		report.ABI = verification.ABI

		standards := DetectStandards(verification.FunctionNames())
		report.Standards = &standards
		report.SecurityFindings = ScanSource(verification.SourceCode)
	} else {
		report.ProbableType = ClassifyBytecode(code)
	}

	return report, nil
}

// auditAccount fills the non-contract branch: native balance and nonce.
// Chain reader errors here propagate to the outer boundary, same as the
// initial code fetch.
func (a *Auditor) auditAccount(ctx context.Context, address common.Address, report model.ContractReport) (model.ContractReport, error) {
	var balance *big.Int
	err := a.callExternal(ctx, "get balance", func(ctx context.Context) error {
		var err error
		balance, err = a.chain.Balance(ctx, address)
		return err
	})
	if err != nil {
		return report, fmt.Errorf("get balance: %w", err)
	}

	var nonce uint64
	err = a.callExternal(ctx, "get transaction count", func(ctx context.Context) error {
		var err error
		nonce, err = a.chain.TransactionCount(ctx, address)
		return err
	})
	if err != nil {
		return report, fmt.Errorf("get transaction count: %w", err)
	}

	report.EthBalance = balance.String()
	report.TransactionCount = &nonce
	return report, nil
}

func (a *Auditor) fetchCode(ctx context.Context, address common.Address) (string, error) {
	var code string
	err := a.callExternal(ctx, "get code", func(ctx context.Context) error {
		var err error
		code, err = a.chain.Code(ctx, address)
		return err
	})
	return code, err
}

// resolveCreation chains the creation-transaction lookup with the
// transaction and block lookups that recover the timestamp. Each link
// degrades locally: a failed creation lookup yields nil, a failed
// timestamp chain still yields creator and tx hash.
func (a *Auditor) resolveCreation(ctx context.Context, address common.Address) *model.CreationInfo {
	var creator, txHash string
	err := a.callExternal(ctx, "contract creation lookup", func(ctx context.Context) error {
		var err error
		creator, txHash, err = a.explorer.ContractCreation(ctx, address)
		return err
	})
	if err != nil {
		a.logger.Warn("creation info unavailable",
			zap.String("address", address.Hex()),
			zap.Error(err),
		)
		return nil
	}

	info := &model.CreationInfo{Creator: creator, TxHash: txHash}

	var blockNumber uint64
	err = a.callExternal(ctx, "creation transaction lookup", func(ctx context.Context) error {
		var err error
		blockNumber, err = a.explorer.TransactionBlockNumber(ctx, txHash)
		return err
	})
	if err != nil {
		a.logger.Warn("creation timestamp unavailable",
			zap.String("tx_hash", txHash),
			zap.Error(err),
		)
		return info
	}

	var ts uint64
	err = a.callExternal(ctx, "creation block lookup", func(ctx context.Context) error {
		var err error
		ts, err = a.explorer.BlockTimestamp(ctx, blockNumber)
		return err
	})
	if err != nil {
		a.logger.Warn("creation timestamp unavailable",
			zap.Uint64("block_number", blockNumber),
			zap.Error(err),
		)
		return info
	}

	info.Timestamp = &ts
	return info
}

// resolveVerification degrades to "not verified" on lookup failure. An ABI
// parse failure is the one partial case: the contract stays verified with
// its source and name, but the ABI is absent and standards detection will
// see an empty function set.
func (a *Auditor) resolveVerification(ctx context.Context, address common.Address) model.VerificationInfo {
	var info model.VerificationInfo
	err := a.callExternal(ctx, "verification lookup", func(ctx context.Context) error {
		var err error
		info, err = a.explorer.SourceAndABI(ctx, address)
		return err
	})
	if err == nil {
		return info
	}

	if errors.Is(err, explorer.ErrABIParse) {
		a.logger.Warn("verified contract with unparseable abi",
			zap.String("address", address.Hex()),
			zap.Error(err),
		)
		return info
	}

	a.logger.Warn("verification lookup failed",
		zap.String("address", address.Hex()),
		zap.Error(err),
	)
	return model.VerificationInfo{}
}

// callExternal applies the per-call deadline and retry policy to one
// external capability call.
func (a *Auditor) callExternal(ctx context.Context, op string, fn func(context.Context) error) error {
	return withRetry(ctx, a.cfg.MaxRetries, a.cfg.RetryBackoff, func(ctx context.Context) error {
		if a.cfg.StageTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, a.cfg.StageTimeout)
			defer cancel()
		}
		err := fn(ctx)
		if err != nil && isRetryable(err) {
			a.logger.Warn(op+" failed", zap.Error(err))
		}
		return err
	})
}

func (a *Auditor) degradedReport(address, note string) model.ContractReport {
	return model.ContractReport{
		Address:     address,
		Chain:       a.cfg.Chain,
		IsContract:  false,
		ErrorNote:   note,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

func isEmptyCode(code string) bool {
	return code == "" || code == "0x"
}
