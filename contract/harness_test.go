package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/ayelagbeoluwatosin81/Decentralized-Medical-Research-Data-Sharing/contract/mocks"

	"github.com/google/uuid"
	"github.com/hyperledger/fabric-chaincode-go/shimtest"
	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"go.uber.org/mock/gomock"
	"google.golang.org/protobuf/types/known/timestamppb"
)

const (
	adminID    = "x509::CN=admin,OU=client::CN=ca.org1"
	ownerID    = "x509::CN=owner,OU=client::CN=ca.org1"
	accessorID = "x509::CN=accessor,OU=client::CN=ca.org2"
	strangerID = "x509::CN=stranger,OU=client::CN=ca.org3"
	testMSPID  = "Org1MSP"
)

// testLedger is a MockStub world state driven one transaction at a time.
// Every transaction runs at the ledger's current logical time.
type testLedger struct {
	stub   *shimtest.MockStub
	ctrl   *gomock.Controller
	now    int64
	events []string
	msps   map[string]string
}

func newTestLedger(t gomock.TestReporter) *testLedger {
	return &testLedger{
		stub: shimtest.NewMockStub("datagov", nil),
		ctrl: gomock.NewController(t),
		now:  100,
		msps: map[string]string{},
	}
}

// setMSP places caller in mspID instead of the default test MSP.
func (l *testLedger) setMSP(caller, mspID string) {
	l.msps[caller] = mspID
}

func (l *testLedger) setTime(seconds int64) {
	l.now = seconds
}

func (l *testLedger) context(caller string) contractapi.TransactionContextInterface {
	identity := mocks.NewMockClientIdentity(l.ctrl)
	identity.EXPECT().GetID().Return(caller, nil).AnyTimes()
	mspID, ok := l.msps[caller]
	if !ok {
		mspID = testMSPID
	}
	identity.EXPECT().GetMSPID().Return(mspID, nil).AnyTimes()

	ctx := new(contractapi.TransactionContext)
	ctx.SetStub(l.stub)
	ctx.SetClientIdentity(identity)
	return ctx
}

// invoke runs fn as a single transaction submitted by caller.
func (l *testLedger) invoke(caller string, fn func(ctx contractapi.TransactionContextInterface) error) error {
	txID := uuid.NewString()
	l.stub.MockTransactionStart(txID)
	l.stub.TxTimestamp = timestamppb.New(time.Unix(l.now, 0))
	defer l.stub.MockTransactionEnd(txID)

	err := fn(l.context(caller))
	l.drainEvents()
	return err
}

// drainEvents empties the stub's bounded event channel.
func (l *testLedger) drainEvents() {
	for {
		select {
		case ev := <-l.stub.ChaincodeEventsChannel:
			l.events = append(l.events, ev.EventName)
		default:
			return
		}
	}
}

func (l *testLedger) lastEvent() string {
	if len(l.events) == 0 {
		return ""
	}
	return l.events[len(l.events)-1]
}

// initRegistry makes admin the admin of registry.
func (l *testLedger) initRegistry(registry, admin string) error {
	return l.invoke(admin, func(ctx contractapi.TransactionContextInterface) error {
		return NewAdminSingleton(ctx, registry).Initialize()
	})
}

// hashOf returns a 32-byte hash made of b repeated, as lowercase hex.
func hashOf(b byte) string {
	return strings.Repeat(fmt.Sprintf("%02x", b), hashSize)
}

// run is invoke for read-only calls that return a value.
func run[T any](l *testLedger, caller string, fn func(ctx contractapi.TransactionContextInterface) (T, error)) (T, error) {
	var out T
	err := l.invoke(caller, func(ctx contractapi.TransactionContextInterface) error {
		var err error
		out, err = fn(ctx)
		return err
	})
	return out, err
}
