package db

const sqliteToken = `
CREATE TABLE IF NOT EXISTS ecobee_token (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    access_token TEXT NOT NULL,
    refresh_token TEXT NOT NULL,
    expires TIMESTAMP NOT NULL
);
`

const sqliteThermostats = `
CREATE TABLE IF NOT EXISTS thermostats (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    time TIMESTAMP NOT NULL,
    is_hygrostat BOOLEAN NOT NULL,
    temperature INTEGER NOT NULL,
    relative_humidity INTEGER NOT NULL
);
`

const postgresToken = `
CREATE TABLE IF NOT EXISTS ecobee_token (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    access_token VARCHAR NOT NULL,
    refresh_token VARCHAR NOT NULL,
    expires TIMESTAMPTZ NOT NULL
);
`

const postgresThermostats = `
CREATE TABLE IF NOT EXISTS thermostats (
    id SERIAL PRIMARY KEY,
    name VARCHAR NOT NULL,
    time TIMESTAMPTZ NOT NULL,
    is_hygrostat BOOLEAN NOT NULL,
    temperature INTEGER NOT NULL,
    relative_humidity INTEGER NOT NULL
);
`

const thermostatsTimeIndex = `CREATE INDEX IF NOT EXISTS idx_thermostats_time ON thermostats (time);`
