package score

import (
	"database/sql"
	"encoding/json"
	"log"
	"time"

	"git.lost.host/meutraa/yargcore/internal/input"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

const DefaultPath = "./history.db"

type DefaultScorer struct {
	db *sql.DB
}

// InputsCompact holds every input of one action. Axes and Integers are only
// kept when some input of the action carries one.
type InputsCompact struct {
	Action   input.Action
	Times    []float64
	Buttons  []bool
	Axes     []float32 `json:",omitempty"`
	Integers []int32   `json:",omitempty"`
}

func compactInputs(inputs []input.GameInput) []InputsCompact {
	count := 0
	for _, i := range inputs {
		if int(i.Action) >= count {
			count = int(i.Action) + 1
		}
	}
	ins := make([]InputsCompact, count)
	for a := range ins {
		ins[a].Action = input.Action(a)
		ins[a].Times = []float64{}
		ins[a].Buttons = []bool{}
	}
	for _, i := range inputs {
		c := &ins[i.Action]
		c.Times = append(c.Times, i.Time)
		c.Buttons = append(c.Buttons, i.Button)
		c.Axes = append(c.Axes, i.Axis)
		c.Integers = append(c.Integers, i.Integer)
	}
	for a := range ins {
		c := &ins[a]
		if !slices.ContainsFunc(c.Axes, func(v float32) bool { return v != 0 }) {
			c.Axes = nil
		}
		if !slices.ContainsFunc(c.Integers, func(v int32) bool { return v != 0 }) {
			c.Integers = nil
		}
	}
	return ins
}

// uncompactInputs restores time order. Inputs at the same time come back
// ordered by action.
func uncompactInputs(inputs []InputsCompact) []input.GameInput {
	ins := []input.GameInput{}
	for _, c := range inputs {
		for j, t := range c.Times {
			in := input.GameInput{Time: t, Action: c.Action}
			if j < len(c.Buttons) {
				in.Button = c.Buttons[j]
			}
			if j < len(c.Axes) {
				in.Axis = c.Axes[j]
			}
			if j < len(c.Integers) {
				in.Integer = c.Integers[j]
			}
			ins = append(ins, in)
		}
	}
	slices.SortStableFunc(ins, func(a, b input.GameInput) bool {
		return a.Time < b.Time
	})
	return ins
}

func (s *DefaultScorer) Init(path string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return errors.Wrapf(err, "unable to open history %v", path)
	}

	initStatement := `
	create table if not exists runs
	  (
		  id text not null primary key,
		  sum text,
		  player text,
		  instrument text,
		  difficulty text,
		  fps real,
		  passed integer,
		  score integer,
		  band_score integer,
		  created integer,
		  inputs bytearray
	  );
	create index if not exists runs_sum on runs(sum);
	`
	if _, err := db.Exec(initStatement); nil != err {
		db.Close()
		return errors.Wrapf(err, "unable to create history tables in %v", path)
	}

	s.db = db
	return nil
}

func (s *DefaultScorer) Deinit() {
	if nil != s.db {
		s.db.Close()
	}
}

func (s *DefaultScorer) Save(sum string, run *Run) (uuid.UUID, error) {
	data, err := json.Marshal(compactInputs(run.Inputs))
	if nil != err {
		return uuid.Nil, errors.Wrap(err, "unable to marshal inputs")
	}
	id := uuid.New()
	created := run.Created
	if created.IsZero() {
		created = time.Now()
	}
	_, err = s.db.Exec(
		"insert into runs(id, sum, player, instrument, difficulty, fps, passed, score, band_score, created, inputs) values(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		id.String(), sum, run.Player, run.Instrument.String(), run.Difficulty.String(), run.FPS, run.Passed, run.Score, run.BandScore, created.UnixNano(), data,
	)
	if nil != err {
		return uuid.Nil, errors.Wrap(err, "unable to save run")
	}
	return id, nil
}

func (s *DefaultScorer) Load(sum string) ([]Run, error) {
	runs := []Run{}
	rows, err := s.db.Query("select id, sum, player, instrument, difficulty, fps, passed, score, band_score, created, inputs from runs where sum = ? order by created, rowid", sum)
	if nil != err {
		return nil, errors.Wrap(err, "unable to load runs")
	}
	defer rows.Close()
	for rows.Next() {
		var run Run
		var id, instrument, difficulty string
		var created int64
		var inputs []byte
		if err := rows.Scan(&id, &run.Sum, &run.Player, &instrument, &difficulty, &run.FPS, &run.Passed, &run.Score, &run.BandScore, &created, &inputs); nil != err {
			return nil, errors.Wrap(err, "unable to read run")
		}
		if run.ID, err = uuid.Parse(id); nil != err {
			log.Println("skipping run with bad id", id, err)
			continue
		}
		if err := run.Instrument.UnmarshalText([]byte(instrument)); nil != err {
			log.Println("skipping run", id, err)
			continue
		}
		if err := run.Difficulty.UnmarshalText([]byte(difficulty)); nil != err {
			log.Println("skipping run", id, err)
			continue
		}
		var ns []InputsCompact
		if err := json.Unmarshal(inputs, &ns); nil != err {
			log.Println("unable to unmarshal input history", id, err)
			continue
		}
		run.Inputs = uncompactInputs(ns)
		run.Created = time.Unix(0, created)
		runs = append(runs, run)
	}
	return runs, errors.Wrap(rows.Err(), "unable to load runs")
}
